package queryplan

// entry maps one query keyword to its canonical filter value.
type entry struct {
	keyword string
	value   string
}

// dictionary is an ordered keyword table for one filter kind. The scan takes
// the first entry whose keyword is a substring of the query, so plural and
// longer variants are declared ahead of their stems.
type dictionary struct {
	kind    Kind
	entries []entry
}

var dictionaries = []dictionary{
	{KindCategory, []entry{
		{"receipts", "receipt"},
		{"receipt", "receipt"},
		{"groceries", "grocery"},
		{"grocery", "grocery"},
		{"food", "grocery"},
		{"bags", "bag"},
		{"bag", "bag"},
		{"purse", "bag"},
		{"handbag", "bag"},
		{"backpack", "bag"},
		{"fashion", "fashion"},
		{"clothing", "fashion"},
		{"clothes", "fashion"},
		{"electronics", "electronics"},
		{"electronic", "electronics"},
		{"gadget", "electronics"},
		{"nails", "nail"},
		{"nail", "nail"},
		{"recipes", "recipe"},
		{"recipe", "recipe"},
	}},
	{KindColor, []entry{
		{"black", "black"},
		{"white", "white"},
		{"gray", "gray"},
		{"grey", "gray"},
		{"silver", "silver"},
		{"red", "red"},
		{"orange", "orange"},
		{"yellow", "yellow"},
		{"gold", "gold"},
		{"green", "green"},
		{"teal", "teal"},
		{"blue", "blue"},
		{"navy", "navy"},
		{"purple", "purple"},
		{"pink", "pink"},
		{"brown", "brown"},
		{"beige", "beige"},
		{"tan", "tan"},
		{"cream", "cream"},
		{"maroon", "maroon"},
	}},
	{KindPattern, []entry{
		{"striped", "striped"},
		{"stripes", "striped"},
		{"polka dot", "polka dot"},
		{"dotted", "polka dot"},
		{"floral", "floral"},
		{"plaid", "plaid"},
		{"checkered", "checkered"},
		{"geometric", "geometric"},
		{"paisley", "paisley"},
		{"solid", "solid"},
	}},
	{KindMaterial, []entry{
		{"leather", "leather"},
		{"suede", "suede"},
		{"fabric", "fabric"},
		{"cotton", "cotton"},
		{"wool", "wool"},
		{"denim", "denim"},
		{"metal", "metal"},
		{"steel", "metal"},
		{"wood", "wood"},
		{"plastic", "plastic"},
		{"glass", "glass"},
		{"ceramic", "ceramic"},
	}},
}

var totalKeywords = func() int {
	n := 0
	for _, d := range dictionaries {
		n += len(d.entries)
	}
	return n
}()
