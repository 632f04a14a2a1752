package models

// Service identifiers offered by listed companies.
const (
	ServiceControlPanelAssembly = "CONTROL_PANEL_ASSEMBLY"
	ServiceSystemIntegration    = "SYSTEM_INTEGRATION"
	ServiceCalibrationServices  = "CALIBRATION_SERVICES"
)

// Services is the ordered set of known service identifiers.
var Services = []string{
	ServiceControlPanelAssembly,
	ServiceSystemIntegration,
	ServiceCalibrationServices,
}

// SizeBuckets is the ordered set of employee-count range labels.
var SizeBuckets = []string{
	"SIZE_1_10",
	"SIZE_11_50",
	"SIZE_51_200",
	"SIZE_201_500",
	"SIZE_501_1000",
	"SIZE_1001_5000",
	"SIZE_5001_10000",
	"SIZE_10000_PLUS",
}

// Certifications is the ordered set of known certification identifiers.
var Certifications = []string{
	"UL_508A",
	"ISO_9001",
	"ISO_14001",
	"OHSAS_18001",
	"IEC_61511",
	"ISA_84",
	"NFPA_70E",
	"OSHA_10",
	"OSHA_30",
	"SIL_CERTIFIED",
}

// USStates holds the two-letter postal codes accepted for HQ state and
// served-area filters.
var USStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

var (
	serviceSet       = toSet(Services)
	sizeBucketSet    = toSet(SizeBuckets)
	certificationSet = toSet(Certifications)
	usStateSet       = toSet(USStates)
)

func toSet(vals []string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

// IsKnownService reports whether s is a recognized service identifier.
func IsKnownService(s string) bool { return serviceSet[s] }

// IsKnownSizeBucket reports whether s is a recognized size bucket.
func IsKnownSizeBucket(s string) bool { return sizeBucketSet[s] }

// IsKnownCertification reports whether s is a recognized certification.
func IsKnownCertification(s string) bool { return certificationSet[s] }

// IsUSState reports whether s is a two-letter US state code.
func IsUSState(s string) bool { return usStateSet[s] }
