package export

import (
	"encoding/json"
	"fmt"

	"github.com/hacchu-app/hacchu/internal/order"
)

// exportJSON writes the full collection as indented JSON. An empty
// collection exports as an empty array so a restore round-trips cleanly.
func (e *Exporter) exportJSON(orders []order.Order, w Window) (Artifact, error) {
	if orders == nil {
		orders = []order.Order{}
	}
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("export: encode json: %w", err)
	}
	return Artifact{
		Filename:    e.Filename(w, ".json"),
		ContentType: "application/json; charset=utf-8",
		Data:        data,
	}, nil
}

// Import parses a JSON export back into orders. Stored aggregates are
// recomputed from the items.
func Import(data []byte) ([]order.Order, error) {
	var orders []order.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("export: decode json: %w", err)
	}
	for i := range orders {
		orders[i].Recalculate()
	}
	return orders, nil
}
