package entity

// FeatureName identifies one binary medical indicator in an answer set
type FeatureName string

// Closed set of indicators both models were trained on
const (
	FeatureSmokes                 FeatureName = "Smokes"
	FeatureHormonalContraceptives FeatureName = "Hormonal Contraceptives"
	FeatureIUD                    FeatureName = "IUD"
	FeatureSTDs                   FeatureName = "STDs"
	FeatureSTDsCondylomatosis     FeatureName = "STDs:condylomatosis"
	FeatureSTDsHIV                FeatureName = "STDs:HIV"
	FeatureDxCancer               FeatureName = "Dx:Cancer"
	FeatureDxCIN                  FeatureName = "Dx:CIN"
	FeatureDxHPV                  FeatureName = "Dx:HPV"
	FeatureDx                     FeatureName = "Dx"
)

var featureNames = []FeatureName{
	FeatureSmokes,
	FeatureHormonalContraceptives,
	FeatureIUD,
	FeatureSTDs,
	FeatureSTDsCondylomatosis,
	FeatureSTDsHIV,
	FeatureDxCancer,
	FeatureDxCIN,
	FeatureDxHPV,
	FeatureDx,
}

// FeatureNames returns the recognized indicator names in their canonical order.
// The slice is a copy; model bundles carry their own ordering.
func FeatureNames() []FeatureName {
	names := make([]FeatureName, len(featureNames))
	copy(names, featureNames)
	return names
}

// IsKnownFeature reports whether name belongs to the closed indicator set
func IsKnownFeature(name string) bool {
	for _, f := range featureNames {
		if string(f) == name {
			return true
		}
	}
	return false
}

// Answers maps indicator names to the values a client submitted.
// Values keep their decoded transport type so validation can reject
// anything that is not exactly 0 or 1.
type Answers map[string]any
