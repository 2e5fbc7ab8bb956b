package utils

const ShortDashDateLayout = "2006-01-02"

const (
	AssetDefaultStatus    = "In Use"
	AssetDefaultUsageType = "General"
)
