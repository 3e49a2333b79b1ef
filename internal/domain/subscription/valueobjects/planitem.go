package valueobjects

import "fmt"

// PlanItem is an ordered reference to a catalog item bundled in a plan.
// Ownership is by reference only; the catalog service owns the item itself.
type PlanItem struct {
	ItemID uint   `json:"item_id"`
	Name   string `json:"name"`
}

func NewPlanItem(itemID uint, name string) (PlanItem, error) {
	if itemID == 0 {
		return PlanItem{}, fmt.Errorf("item ID is required")
	}
	if name == "" {
		return PlanItem{}, fmt.Errorf("item name is required")
	}
	return PlanItem{ItemID: itemID, Name: name}, nil
}
