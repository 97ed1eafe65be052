package schema

// OutputMode controls how results are rendered.
type OutputMode string

// Supported output modes.
const (
	TextOut OutputMode = "text"
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// ValidOutputMode reports whether the mode is supported.
func ValidOutputMode(m OutputMode) bool {
	switch m {
	case TextOut, CSVOut, JSONOut:
		return true
	}
	return false
}

// StoreBackend identifies the snapshot store database backend.
type StoreBackend string

// Supported snapshot store backends.
const (
	SQLiteBackend     StoreBackend = "sqlite"
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// ValidStoreBackend reports whether the backend is supported.
func ValidStoreBackend(b StoreBackend) bool {
	switch b {
	case SQLiteBackend, MySQLBackend, PostgreSQLBackend, NoneBackend:
		return true
	}
	return false
}

// RankingStrategy selects the centrality formula for key-developer ranking.
type RankingStrategy string

// Supported ranking strategies.
const (
	DegreeRanking      RankingStrategy = "degree"
	EigenvectorRanking RankingStrategy = "eigenvector"
)

// ValidRankingStrategy reports whether the strategy is supported.
func ValidRankingStrategy(r RankingStrategy) bool {
	return r == DegreeRanking || r == EigenvectorRanking
}

// SelectionPolicy controls how key developers are selected from the ranking.
type SelectionPolicy string

// Supported selection policies.
const (
	TopKSelection      SelectionPolicy = "topk"
	ThresholdSelection SelectionPolicy = "threshold"
)

// ValidSelectionPolicy reports whether the policy is supported.
func ValidSelectionPolicy(p SelectionPolicy) bool {
	return p == TopKSelection || p == ThresholdSelection
}

// DistributionLabel classifies how evenly knowledge is spread in a window.
type DistributionLabel string

// Distribution labels.
const (
	BalancedLabel         DistributionLabel = "balanced"
	HeroLabel             DistributionLabel = "hero"
	InsufficientDataLabel DistributionLabel = "insufficient_data"
)

// ClassifierName identifies a distribution shape test strategy.
type ClassifierName string

// Supported classifiers.
const (
	SkewnessClassifier  ClassifierName = "skewness"
	KSUniformClassifier ClassifierName = "ks-uniform"
)

// ValidClassifierName reports whether the classifier is supported.
func ValidClassifierName(c ClassifierName) bool {
	return c == SkewnessClassifier || c == KSUniformClassifier
}
