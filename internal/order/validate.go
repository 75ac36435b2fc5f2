package order

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationMode selects how much of an order is checked. Preview rendering
// uses ModeLenient, which never blocks; explicit save uses ModeStrict.
type ValidationMode int

const (
	ModeLenient ValidationMode = iota
	ModeStrict
)

// FieldError is one validation finding, labelled with the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// strictFields mirrors the required parts of an order for tag validation.
type strictFields struct {
	CompanyName     string `validate:"required"`
	CompanyAddress  string `validate:"required"`
	CompanyPhone    string `validate:"required"`
	CompanyEmail    string `validate:"required,email"`
	OrderDate       string `validate:"required"`
	StaffMember     string `validate:"required"`
	SupplierName    string `validate:"required"`
	SupplierAddress string `validate:"required"`
	PaymentTerms    string `validate:"required"`
}

var fieldLabels = map[string]string{
	"CompanyName":     "会社名",
	"CompanyAddress":  "住所",
	"CompanyPhone":    "TEL/FAX",
	"CompanyEmail":    "Email",
	"OrderDate":       "発注日",
	"StaffMember":     "担当",
	"SupplierName":    "発注先会社名",
	"SupplierAddress": "発注先住所",
	"PaymentTerms":    "支払条件",
}

var validate = validator.New()

// Validate checks an assembled order. Violations are collected, not raised
// one by one; the caller decides whether the list blocks the save or is only
// shown as a warning. ModeLenient always returns nil so previews render no
// matter how incomplete the draft is.
func Validate(o Order, mode ValidationMode, now time.Time) []FieldError {
	if mode == ModeLenient {
		return nil
	}

	var errs []FieldError

	form := strictFields{
		CompanyName:     o.CompanyName,
		CompanyAddress:  o.CompanyAddress,
		CompanyPhone:    o.CompanyPhone,
		CompanyEmail:    o.CompanyEmail,
		OrderDate:       o.OrderDate,
		StaffMember:     o.StaffMember,
		SupplierName:    o.SupplierName,
		SupplierAddress: o.SupplierAddress,
		PaymentTerms:    o.PaymentTerms,
	}
	if err := validate.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			label := fieldLabels[fieldErr.StructField()]
			switch fieldErr.Tag() {
			case "required":
				errs = append(errs, FieldError{Field: fieldErr.StructField(), Message: label + "は必須項目です。"})
			case "email":
				errs = append(errs, FieldError{Field: fieldErr.StructField(), Message: label + "の形式が正しくありません。"})
			}
		}
	}

	if o.ItemCount() == 0 {
		errs = append(errs, FieldError{Field: "Items", Message: "最低1つの商品を入力してください。"})
	}
	for _, it := range o.Items {
		if it.Void() {
			continue
		}
		if it.Quantity <= 0 {
			errs = append(errs, FieldError{Field: "Items", Message: fmt.Sprintf("商品「%s」の数量は0より大きい値を入力してください。", it.Name)})
		}
		if it.UnitPrice < 0 {
			errs = append(errs, FieldError{Field: "Items", Message: fmt.Sprintf("商品「%s」の単価は0以上の値を入力してください。", it.Name)})
		}
	}

	if date, ok := o.Date(); ok {
		// Parsed dates sit at UTC midnight; compare against the same point.
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if date.After(today) {
			errs = append(errs, FieldError{Field: "OrderDate", Message: "発注日は今日以前の日付を入力してください。"})
		}
		if date.Before(today.AddDate(-1, 0, 0)) {
			errs = append(errs, FieldError{Field: "OrderDate", Message: "発注日は1年以内の日付を入力してください。"})
		}
	} else if trimmed(o.OrderDate) != "" {
		errs = append(errs, FieldError{Field: "OrderDate", Message: "発注日の形式が正しくありません。"})
	}

	return errs
}
