package model

import "github.com/shopspring/decimal"

// 配達ゾーン。固定リストで、ゾーンごとに定額の配達料と目安時間を持つ。
type DeliveryZone struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Cost  decimal.Decimal `json:"cost"`
	ETA   string          `json:"eta"`
}

var deliveryZones = []DeliveryZone{
	{ID: "chacao", Label: "Chacao", Cost: decimal.NewFromFloat(2.00), ETA: "24h"},
	{ID: "baruta", Label: "Baruta", Cost: decimal.NewFromFloat(3.00), ETA: "24-48h"},
	{ID: "libertador", Label: "Libertador", Cost: decimal.NewFromFloat(3.00), ETA: "24-48h"},
	{ID: "sucre", Label: "Sucre", Cost: decimal.NewFromFloat(4.00), ETA: "48h"},
	{ID: "el-hatillo", Label: "El Hatillo", Cost: decimal.NewFromFloat(5.00), ETA: "48-72h"},
}

func DeliveryZones() []DeliveryZone {
	out := make([]DeliveryZone, len(deliveryZones))
	copy(out, deliveryZones)
	return out
}

func FindDeliveryZone(id string) (DeliveryZone, bool) {
	for _, z := range deliveryZones {
		if z.ID == id {
			return z, true
		}
	}
	return DeliveryZone{}, false
}
