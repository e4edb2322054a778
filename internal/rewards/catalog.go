package rewards

// Option is one redeemable reward. The catalog is fixed; costs are in
// points.
type Option struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
}

var catalog = []Option{
	{ID: "simplygo", Title: "SimplyGo Credits", Description: "$5 public transport credit", Cost: 100},
	{ID: "fairprice", Title: "FairPrice Voucher", Description: "$5 FairPrice voucher", Cost: 120},
	{ID: "kopitiam", Title: "Kopitiam Voucher", Description: "$5 Kopitiam voucher", Cost: 100},
	{ID: "community_chest", Title: "Community Chest Donation", Description: "Donate $5 to Community Chest", Cost: 100},
	{ID: "sgh", Title: "SGH Needy Patients Fund", Description: "Donate $5 to SGH Needy Patients Fund", Cost: 100},
}

// Options returns the full catalog.
func Options() []Option {
	out := make([]Option, len(catalog))
	copy(out, catalog)
	return out
}

// OptionByID looks up a catalog entry.
func OptionByID(id string) (Option, bool) {
	for _, o := range catalog {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
