package reference

// seedKeywords is the starter keyword table shared by both roles.
var seedKeywords = map[string]string{
	"Kedutaan":          "B0",
	"Kementerian":       "B0",
	"DEPKEU":            "B0",
	"KEMENKEU":          "B0",
	"DITJEN":            "B0",
	"MINISTRY":          "B0",
	"AMBASADA":          "B0",
	"CONSULATE GENERAL": "B0",
	"EMBASSY":           "B0",
	"GOVERNMENT":        "B0",

	"Bank Indonesia":                  "C0",
	"Federal Reserve":                 "C0",
	"The FED":                         "C0",
	"Bank Negara Malaysia":            "C0",
	"Bangko Sentral ng Pilipinas":     "C0",
	"Monetary Authority of Singapore": "C0",
	"Bank of Thailand":                "C0",
	"Bank of Japan":                   "C0",

	"BPD":                     "C9",
	"Bank Pembangunan Daerah": "C9",

	"Indonesia exim bank": "D0",
	"insurance":           "D0",
	"reinsurance":         "D0",
	"asuransi":            "D0",
	"reasuransi":          "D0",
	"leasing":             "D0",
	"broker":              "D0",
	"multifinance":        "D0",
	"AON":                 "D0",
	"sekuritas":           "D0",
	"securities":          "D0",
	"finance":             "D0",

	"PT":                "E0",
	"LTD":               "E0",
	"PTE LTD":           "E0",
	"Perum":             "E0",
	"Pertamina":         "E0",
	"Kaltim Prima Coal": "E0",
	"Wilmar Nabati":     "E0",
	"Musim Mas":         "E0",
	"Multimas Nabati":   "E0",

	"Asian Development Bank":      "F1",
	"ADB":                         "F1",
	"Islamic Development Bank":    "F1",
	"International Monetary Fund": "F1",
	"IMF":                         "F1",
	"World Bank":                  "F1",
	"WB":                          "F1",

	"United Nation":                     "F2",
	"UN":                                "F2",
	"UNHCR":                             "F2",
	"FAO":                               "F2",
	"Food and Agriculture Organization": "F2",
	"International Civil Aviation Organization": "F2",
	"ICAO":                               "F2",
	"International Atomic Energy Agency": "F2",
	"IAEA":                               "F2",
	"International Fund for Agricultural Development": "F2",
	"IFAD":                                  "F2",
	"International Labour Organization":     "F2",
	"ILO":                                   "F2",
	"International Maritime Organization":   "F2",
	"IMO":                                   "F2",
	"International Telecommunication Union": "F2",
	"UNESCO":                                "F2",
	"UNIDO":                                 "F2",
	"UPU":                                   "F2",
	"World Health Organization":             "F2",
	"WHO":                                   "F2",
	"WIPO":                                  "F2",
	"WMO":                                   "F2",
	"UNWTO":                                 "F2",

	"Koperasi":    "Z9",
	"University":  "Z9",
	"Universitas": "Z9",
	"Hospital":    "Z9",
	"Rumah sakit": "Z9",
	"Sekolah":     "Z9",
	"School":      "Z9",
	"Institut":    "Z9",
	"Institute":   "Z9",
	"Yayasan":     "Z9",
	"Lembaga":     "Z9",
	"Perkumpulan": "Z9",
	"Gereja":      "Z9",
	"Church":      "Z9",
	"Organisasi":  "Z9",
	"Foundation":  "Z9",
}

var seedBankCodes = map[string]string{
	"222": "AAA",
	"333": "BBB",
}

var seedStatusKeywords = map[string][]string{
	"SINGAPORE":     {"SG"},
	"SINGAPURA":     {"SG"},
	"PTE LTD":       {"SG"},
	"MALAYSIA":      {"MY"},
	"SDN BHD":       {"MY"},
	"JAPAN":         {"JP"},
	"JEPANG":        {"JP"},
	"UNITED STATES": {"US"},
	"USA":           {"US"},
	"HONG KONG":     {"HK"},
	"CHINA":         {"CN"},
	"THAILAND":      {"TH"},
	"PHILIPPINES":   {"PH"},
	"AUSTRALIA":     {"AU"},
	"PT":            {"ID", "N1"},
}

// SeedTables returns the starter reference data written by the seed
// command. Every call returns fresh maps.
func SeedTables() *Tables {
	return &Tables{
		Receiver:       copyStrings(seedKeywords),
		Payer:          copyStrings(seedKeywords),
		BankCodes:      copyStrings(seedBankCodes),
		StatusKeywords: copyStatuses(seedStatusKeywords),
	}
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyStatuses(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}
