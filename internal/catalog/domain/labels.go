package domain

// System catalog rows are stored with their Japanese names; the maps below
// provide the per-language display labels keyed by the fixed sys-* ids.

var systemTabLabels = map[string]map[Language]string{
	"sys-tab-detergent": {LanguageJA: "洗剤", LanguageEN: "Detergent"},
	"sys-tab-washroom":  {LanguageJA: "洗面", LanguageEN: "Washroom"},
	"sys-tab-beauty":    {LanguageJA: "美容", LanguageEN: "Beauty"},
	"sys-tab-kitchen":   {LanguageJA: "キッチン", LanguageEN: "Kitchen"},
	"sys-tab-store":     {LanguageJA: "買い物メモ", LanguageEN: "Shopping Notes"},
}

var systemItemLabels = map[string]map[Language]string{
	"sys-item-detergent":     {LanguageJA: "洗剤", LanguageEN: "Detergent"},
	"sys-item-refill":        {LanguageJA: "詰替え", LanguageEN: "Refill"},
	"sys-item-tissue":        {LanguageJA: "ティッシュ", LanguageEN: "Tissue"},
	"sys-item-toilet-paper":  {LanguageJA: "トイレットペーパー", LanguageEN: "Toilet Paper"},
	"sys-item-hand-paper":    {LanguageJA: "ハンドペーパー", LanguageEN: "Hand Paper"},
	"sys-item-cotton":        {LanguageJA: "コットン", LanguageEN: "Cotton"},
	"sys-item-shampoo":       {LanguageJA: "シャンプー", LanguageEN: "Shampoo"},
	"sys-item-conditioner":   {LanguageJA: "リンス", LanguageEN: "Conditioner"},
	"sys-item-kitchen-paper": {LanguageJA: "キッチンペーパー", LanguageEN: "Kitchen Paper"},
	"sys-item-carrot":        {LanguageJA: "にんじん", LanguageEN: "Carrot"},
}

var systemStoreLabels = map[string]map[Language]string{
	"sys-store-summit": {LanguageJA: "サミット", LanguageEN: "Summit"},
	"sys-store-nitori": {LanguageJA: "ニトリ", LanguageEN: "Nitori"},
	"sys-store-ikea":   {LanguageJA: "IKEA", LanguageEN: "IKEA"},
	"sys-store-aeon":   {LanguageJA: "イオン", LanguageEN: "AEON"},
	"sys-store-gyomu":  {LanguageJA: "業務スーパー", LanguageEN: "Wholesale Market"},
}

func LocalizeTabName(id, fallback string, lang Language) string {
	if label, ok := systemTabLabels[id][lang]; ok {
		return label
	}
	return fallback
}

func LocalizeItemName(id, fallback string, lang Language) string {
	if label, ok := systemItemLabels[id][lang]; ok {
		return label
	}
	return fallback
}

func LocalizeStoreName(id, fallback string, lang Language) string {
	if label, ok := systemStoreLabels[id][lang]; ok {
		return label
	}
	return fallback
}
