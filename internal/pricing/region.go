package pricing

// DeliveryMethod selects between office pickup ("desk") and home delivery.
type DeliveryMethod string

const (
	MethodDesk DeliveryMethod = "desk"
	MethodHome DeliveryMethod = "home"
)

// Valid reports whether m is one of the known methods.
func (m DeliveryMethod) Valid() bool {
	return m == MethodDesk || m == MethodHome
}

// RegionInfo is one wilaya of the shipping table. Desk is nil where no pickup
// office exists.
type RegionInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Desk *int64 `json:"desk"`
	Home int64  `json:"home"`
}

// HasDesk reports whether office pickup is offered in the region.
func (r RegionInfo) HasDesk() bool {
	return r.Desk != nil
}

func cost(n int64) *int64 { return &n }

var regions = []RegionInfo{
	{Code: "1", Name: "01 - Adrar", Desk: cost(800), Home: 1300},
	{Code: "2", Name: "02 - Chlef", Desk: cost(450), Home: 750},
	{Code: "3", Name: "03 - Laghouat", Desk: cost(450), Home: 900},
	{Code: "4", Name: "04 - Oum El Bouaghi", Desk: cost(450), Home: 700},
	{Code: "5", Name: "05 - Batna", Desk: cost(450), Home: 700},
	{Code: "6", Name: "06 - Béjaïa", Desk: cost(450), Home: 750},
	{Code: "7", Name: "07 - Biskra", Desk: cost(450), Home: 900},
	{Code: "8", Name: "08 - Béchar", Desk: cost(600), Home: 1000},
	{Code: "9", Name: "09 - Blida", Desk: cost(450), Home: 700},
	{Code: "10", Name: "10 - Bouira", Desk: cost(450), Home: 750},
	{Code: "11", Name: "11 - Tamanrasset", Desk: cost(750), Home: 1500},
	{Code: "12", Name: "12 - Tébessa", Desk: cost(450), Home: 800},
	{Code: "13", Name: "13 - Tlemcen", Desk: cost(450), Home: 850},
	{Code: "14", Name: "14 - Tiaret", Desk: cost(450), Home: 850},
	{Code: "15", Name: "15 - Tizi-Ouzou", Desk: cost(450), Home: 750},
	{Code: "16", Name: "16 - Alger", Desk: cost(450), Home: 600},
	{Code: "17", Name: "17 - Djelfa", Desk: cost(500), Home: 900},
	{Code: "18", Name: "18 - Jijel", Desk: cost(450), Home: 700},
	{Code: "19", Name: "19 - Sétif", Desk: cost(300), Home: 450},
	{Code: "20", Name: "20 - Saida", Desk: cost(450), Home: 900},
	{Code: "21", Name: "21 - Skikda", Desk: cost(450), Home: 750},
	{Code: "22", Name: "22 - Sidi-Bel-Abbès", Desk: cost(450), Home: 850},
	{Code: "23", Name: "23 - Annaba", Desk: cost(450), Home: 750},
	{Code: "24", Name: "24 - Guelma", Desk: cost(450), Home: 700},
	{Code: "25", Name: "25 - Constantine", Desk: cost(450), Home: 700},
	{Code: "26", Name: "26 - Médéa", Desk: cost(450), Home: 750},
	{Code: "27", Name: "27 - Mostaganem", Desk: cost(450), Home: 850},
	{Code: "28", Name: "28 - M'Sila", Desk: cost(450), Home: 800},
	{Code: "29", Name: "29 - Mascara", Desk: cost(450), Home: 850},
	{Code: "30", Name: "30 - Ouargla", Desk: cost(450), Home: 900},
	{Code: "31", Name: "31 - Oran", Desk: cost(450), Home: 850},
	{Code: "32", Name: "32 - El-Bayadh", Desk: cost(450), Home: 1000},
	{Code: "33", Name: "33 - Illizi", Desk: cost(800), Home: 1700},
	{Code: "34", Name: "34 - Bordj-Bou-Arreridj", Desk: cost(450), Home: 550},
	{Code: "35", Name: "35 - Boumerdès", Desk: cost(450), Home: 700},
	{Code: "36", Name: "36 - El-Tarf", Desk: cost(450), Home: 750},
	{Code: "37", Name: "37 - Tindouf", Desk: nil, Home: 1600},
	{Code: "38", Name: "38 - Tissemsilt", Desk: cost(450), Home: 800},
	{Code: "39", Name: "39 - El-Oued", Desk: cost(450), Home: 900},
	{Code: "40", Name: "40 - Khenchela", Desk: cost(450), Home: 750},
	{Code: "41", Name: "41 - Souk-Ahras", Desk: cost(450), Home: 750},
	{Code: "42", Name: "42 - Tipaza", Desk: cost(450), Home: 700},
	{Code: "43", Name: "43 - Mila", Desk: cost(450), Home: 700},
	{Code: "44", Name: "44 - Aïn-Defla", Desk: cost(450), Home: 750},
	{Code: "45", Name: "45 - Naâma", Desk: cost(500), Home: 1000},
	{Code: "46", Name: "46 - Aïn-Témouchent", Desk: cost(450), Home: 850},
	{Code: "47", Name: "47 - Ghardaia", Desk: cost(600), Home: 900},
	{Code: "48", Name: "48 - Relizane", Desk: cost(450), Home: 850},
	{Code: "49", Name: "49 - Timimoun", Desk: nil, Home: 1300},
	{Code: "50", Name: "50 - Bordj Badji Mokhtar", Desk: nil, Home: 1500},
	{Code: "51", Name: "51 - Ouled Djellal", Desk: nil, Home: 900},
	{Code: "52", Name: "52 - Béni Abbès", Desk: nil, Home: 1050},
	{Code: "53", Name: "53 - In Salah", Desk: nil, Home: 1400},
	{Code: "54", Name: "54 - In Guezzam", Desk: nil, Home: 1700},
	{Code: "55", Name: "55 - Touggourt", Desk: cost(550), Home: 1000},
	{Code: "56", Name: "56 - Djanet", Desk: cost(800), Home: 1600},
	{Code: "57", Name: "57 - El M'Ghair", Desk: cost(500), Home: 900},
	{Code: "58", Name: "58 - El Meniaa", Desk: cost(500), Home: 1000},
}

// Regions without an entry here take a free-text commune.
var communes = map[string][]string{
	"16": {"Bab Ezzouar", "Kouba", "Alger Center", "Hydra", "Ben Aknoun", "El Biar"},
	"31": {"Es Senia", "Oran Center", "Bir El Djir"},
	"25": {"El Khroub", "Constantine", "Ali Mendjeli"},
}

var regionIndex = func() map[string]RegionInfo {
	idx := make(map[string]RegionInfo, len(regions))
	for _, r := range regions {
		idx[r.Code] = r
	}
	return idx
}()

// Regions returns the shipping table in display order.
func Regions() []RegionInfo {
	out := make([]RegionInfo, len(regions))
	copy(out, regions)
	return out
}

// Region looks up a region by code.
func Region(code string) (RegionInfo, bool) {
	r, ok := regionIndex[code]
	return r, ok
}

// Communes returns the fixed commune list for a region, or nil when the commune is
// typed freely.
func Communes(code string) []string {
	list, ok := communes[code]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// EffectiveMethod forces home delivery when the region has no pickup office. Unknown
// regions keep the requested method.
func EffectiveMethod(code string, method DeliveryMethod) DeliveryMethod {
	r, ok := regionIndex[code]
	if ok && method == MethodDesk && !r.HasDesk() {
		return MethodHome
	}
	if !method.Valid() {
		return MethodHome
	}
	return method
}

// ShippingCost returns the pickup cost when desk delivery is requested and offered,
// the home cost otherwise, and 0 for an unknown region.
func ShippingCost(code string, method DeliveryMethod) int64 {
	r, ok := regionIndex[code]
	if !ok {
		return 0
	}
	if method == MethodDesk && r.Desk != nil {
		return *r.Desk
	}
	return r.Home
}
