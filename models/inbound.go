package models

import (
	"fmt"
	"time"
)

// PrepInstruction is the closed set of item preparation codes.
type PrepInstruction string

const (
	PrepPolybagging         PrepInstruction = "Polybagging"
	PrepBubbleWrapping      PrepInstruction = "BubbleWrapping"
	PrepTaping              PrepInstruction = "Taping"
	PrepBlackShrinkWrapping PrepInstruction = "BlackShrinkWrapping"
	PrepLabeling            PrepInstruction = "Labeling"
	PrepHangGarment         PrepInstruction = "HangGarment"
)

var prepInstructions = map[PrepInstruction]bool{
	PrepPolybagging:         true,
	PrepBubbleWrapping:      true,
	PrepTaping:              true,
	PrepBlackShrinkWrapping: true,
	PrepLabeling:            true,
	PrepHangGarment:         true,
}

// PrepOwner identifies who performs item preparation.
type PrepOwner string

const (
	PrepOwnerAmazon PrepOwner = "AMAZON"
	PrepOwnerSeller PrepOwner = "SELLER"
)

// PrepDetails pairs a preparation instruction with its owner. Owner
// defaults to the seller.
type PrepDetails struct {
	PrepInstruction PrepInstruction
	PrepOwner       PrepOwner
}

// Validate checks the instruction against the closed enumeration.
func (p PrepDetails) Validate() error {
	if !prepInstructions[p.PrepInstruction] {
		return fmt.Errorf("invalid PrepInstruction %q", string(p.PrepInstruction))
	}
	return nil
}

// ParamMap renders the pair as MWS parameters.
func (p PrepDetails) ParamMap() map[string]any {
	owner := p.PrepOwner
	if owner == "" {
		owner = PrepOwnerSeller
	}
	return map[string]any{
		"PrepInstruction": string(p.PrepInstruction),
		"PrepOwner":       string(owner),
	}
}

// ItemCondition is the listing condition attached to planned items.
type ItemCondition string

const (
	ConditionNewItem                 ItemCondition = "NewItem"
	ConditionNewWithWarranty         ItemCondition = "NewWithWarranty"
	ConditionNewOEM                  ItemCondition = "NewOEM"
	ConditionNewOpenBox              ItemCondition = "NewOpenBox"
	ConditionUsedLikeNew             ItemCondition = "UsedLikeNew"
	ConditionUsedVeryGood            ItemCondition = "UsedVeryGood"
	ConditionUsedGood                ItemCondition = "UsedGood"
	ConditionUsedAcceptable          ItemCondition = "UsedAcceptable"
	ConditionUsedPoor                ItemCondition = "UsedPoor"
	ConditionUsedRefurbished         ItemCondition = "UsedRefurbished"
	ConditionCollectibleLikeNew      ItemCondition = "CollectibleLikeNew"
	ConditionCollectibleVeryGood     ItemCondition = "CollectibleVeryGood"
	ConditionCollectibleGood         ItemCondition = "CollectibleGood"
	ConditionCollectibleAcceptable   ItemCondition = "CollectibleAcceptable"
	ConditionCollectiblePoor         ItemCondition = "CollectiblePoor"
	ConditionRefurbishedWithWarranty ItemCondition = "RefurbishedWithWarranty"
	ConditionRefurbished             ItemCondition = "Refurbished"
	ConditionClub                    ItemCondition = "Club"
)

// Inbound shipment operations that accept item models. Each item kind
// declares the operations it may be used with; pairing an item with any
// other operation is a client-side error.
const (
	OpCreateInboundShipmentPlan = "CreateInboundShipmentPlan"
	OpCreateInboundShipment     = "CreateInboundShipment"
	OpUpdateInboundShipment     = "UpdateInboundShipment"
)

// InboundShipmentPlanRequestItem is the item variant accepted by
// CreateInboundShipmentPlan. Its quantity parameter is named Quantity and
// it may carry an ASIN and a listing condition.
type InboundShipmentPlanRequestItem struct {
	SellerSKU      string
	Quantity       int
	QuantityInCase int
	ASIN           string
	Condition      ItemCondition
	PrepDetails    []PrepDetails
}

// ValidateOperation enforces the operation/kind pairing.
func (i InboundShipmentPlanRequestItem) ValidateOperation(operation string) error {
	if operation != OpCreateInboundShipmentPlan {
		return fmt.Errorf("InboundShipmentPlanRequestItem cannot be used with operation %s", operation)
	}
	return nil
}

// ParamMap renders the item with its declared quantity parameter name.
func (i InboundShipmentPlanRequestItem) ParamMap() map[string]any {
	out := map[string]any{
		"SellerSKU": i.SellerSKU,
		"Quantity":  i.Quantity,
	}
	if i.QuantityInCase > 0 {
		out["QuantityInCase"] = i.QuantityInCase
	}
	if i.ASIN != "" {
		out["ASIN"] = i.ASIN
	}
	if i.Condition != "" {
		out["Condition"] = string(i.Condition)
	}
	addPrepDetails(out, i.PrepDetails)
	return out
}

// InboundShipmentItem is the item variant accepted by
// CreateInboundShipment and UpdateInboundShipment. Its quantity parameter
// is named QuantityShipped and it may carry a release date.
type InboundShipmentItem struct {
	SellerSKU       string
	QuantityShipped int
	QuantityInCase  int
	ReleaseDate     time.Time
	PrepDetails     []PrepDetails
}

// ValidateOperation enforces the operation/kind pairing.
func (i InboundShipmentItem) ValidateOperation(operation string) error {
	if operation != OpCreateInboundShipment && operation != OpUpdateInboundShipment {
		return fmt.Errorf("InboundShipmentItem cannot be used with operation %s", operation)
	}
	return nil
}

// ParamMap renders the item with its declared quantity parameter name.
func (i InboundShipmentItem) ParamMap() map[string]any {
	out := map[string]any{
		"SellerSKU":       i.SellerSKU,
		"QuantityShipped": i.QuantityShipped,
	}
	if i.QuantityInCase > 0 {
		out["QuantityInCase"] = i.QuantityInCase
	}
	if !i.ReleaseDate.IsZero() {
		out["ReleaseDate"] = i.ReleaseDate.UTC().Format("2006-01-02")
	}
	addPrepDetails(out, i.PrepDetails)
	return out
}

func addPrepDetails(out map[string]any, details []PrepDetails) {
	for n, d := range details {
		for field, v := range d.ParamMap() {
			out[fmt.Sprintf("PrepDetailsList.PrepDetails.%d.%s", n+1, field)] = v
		}
	}
}

// PlanItemFromLegacy builds a plan-request item from a legacy dictionary
// with keys sku, quantity, quantity_in_case, asin and condition. The sku
// and quantity keys are required; unknown keys are ignored.
func PlanItemFromLegacy(m map[string]any) (InboundShipmentPlanRequestItem, error) {
	sku, qty, inCase, err := legacyItemCore(m, "quantity")
	if err != nil {
		return InboundShipmentPlanRequestItem{}, err
	}
	item := InboundShipmentPlanRequestItem{
		SellerSKU:      sku,
		Quantity:       qty,
		QuantityInCase: inCase,
	}
	if v, ok := m["asin"]; ok && v != nil {
		item.ASIN = fmt.Sprint(v)
	}
	if v, ok := m["condition"]; ok && v != nil {
		item.Condition = ItemCondition(fmt.Sprint(v))
	}
	return item, nil
}

// ShipmentItemFromLegacy builds a shipment item from a legacy dictionary
// with keys sku, quantity, quantity_in_case and release_date.
func ShipmentItemFromLegacy(m map[string]any) (InboundShipmentItem, error) {
	sku, qty, inCase, err := legacyItemCore(m, "quantity")
	if err != nil {
		return InboundShipmentItem{}, err
	}
	item := InboundShipmentItem{
		SellerSKU:       sku,
		QuantityShipped: qty,
		QuantityInCase:  inCase,
	}
	if v, ok := m["release_date"]; ok {
		if t, isTime := v.(time.Time); isTime {
			item.ReleaseDate = t
		}
	}
	return item, nil
}

func legacyItemCore(m map[string]any, quantityKey string) (sku string, qty, inCase int, err error) {
	rawSKU, ok := m["sku"]
	if !ok || rawSKU == nil || fmt.Sprint(rawSKU) == "" {
		return "", 0, 0, fmt.Errorf("legacy item is missing required key %q", "sku")
	}
	rawQty, ok := m[quantityKey]
	if !ok || rawQty == nil {
		return "", 0, 0, fmt.Errorf("legacy item is missing required key %q", quantityKey)
	}
	qty, err = toInt(rawQty)
	if err != nil {
		return "", 0, 0, fmt.Errorf("legacy item key %q: %w", quantityKey, err)
	}
	if raw, ok := m["quantity_in_case"]; ok && raw != nil {
		inCase, err = toInt(raw)
		if err != nil {
			return "", 0, 0, fmt.Errorf("legacy item key %q: %w", "quantity_in_case", err)
		}
	}
	return fmt.Sprint(rawSKU), qty, inCase, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		var out int
		if _, err := fmt.Sscanf(n, "%d", &out); err != nil {
			return 0, fmt.Errorf("expected an integer, got %q", n)
		}
		return out, nil
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}
