package order

// PaintingPreset returns the standard painting-works line-item rows. The
// quantity is left blank on purpose: preset rows only become part of an order
// once the user fills in a measured quantity, otherwise the retention rule
// drops them.
func PaintingPreset() []RowInput {
	presets := []struct {
		projectLabel string
		name         string
		unit         string
		unitPrice    string
	}{
		{"屋根洗浄", "水洗浄", "㎡", "90"},
		{"外壁洗浄", "水洗浄", "㎡", "90"},
		{"外壁塗装(サイディング下地)", "下塗り＋上塗り2回", "㎡", "820"},
		{"外壁塗装(モルタル下地)", "下塗り＋上塗り2回　微弾性フィラー　ローラー塗装", "㎡", "820"},
		{"屋根塗装(スレート屋根)", "下塗り＋上塗り2回", "㎡", "820"},
		{"屋根塗装(セメント瓦)", "下塗り2回＋上塗り2回", "㎡", "1000"},
		{"軒裏", "上塗り仕上げ", "㎡", "640"},
		{"雨樋", "上塗り仕上げ", "M", "270"},
		{"シャッターボックス", "上塗り仕上げ", "M", "270"},
		{"雨戸", "上塗り仕上げ", "㎡", "270"},
		{"棟包・隅棟包", "上塗り仕上げ", "M", "270"},
		{"壁際水切", "上塗り仕上げ(コーナー鉄部共)", "M", "270"},
		{"破風・鼻隠し", "上塗り仕上げ", "M", "270"},
		{"胴差", "上塗り仕上げ", "M", "270"},
		{"モール", "上塗り仕上げ", "M", "270"},
		{"腰壁", "上塗り仕上げ", "M", "270"},
		{"土台水切", "上塗り仕上げ", "M", "270"},
		{"玄関庇", "上塗り仕上げ", "ヶ所", "3030"},
		{"勝手口庇", "上塗り仕上げ", "ヶ所", "1850"},
		{"雑塗装", "上塗り仕上げ", "式", "5000"},
	}
	rows := make([]RowInput, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, RowInput{
			ProjectLabel: p.projectLabel,
			Name:         p.name,
			Unit:         p.unit,
			UnitPrice:    p.unitPrice,
		})
	}
	return rows
}
