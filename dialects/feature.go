package dialects

// Feature identifies an optional SQL capability that not every dialect
// implements. Compiling a tree that uses a feature the target dialect lacks
// produces an UnsupportedFeatureError instead of invalid SQL.
type Feature int

const (
	FeatureReturning Feature = iota
	FeatureOnConflict
	FeatureMerge
	FeatureWindowFunctions
	FeatureCTE
	FeatureRecursiveCTE
	FeatureRowLocking
	FeatureSkipLocked
	FeatureDistinctOn
	FeatureLateral
	FeatureQualify
	FeatureUpdateFrom
	FeatureDeleteUsing
	FeatureFullOuterJoin
	FeatureGroupingSets
	FeatureTableFunctions
	FeatureGraphMatch
	FeatureIntersectAll
	FeatureExceptAll
)

// String returns a readable name for the feature, used in error messages.
func (f Feature) String() string {
	switch f {
	case FeatureReturning:
		return "RETURNING clause"
	case FeatureOnConflict:
		return "ON CONFLICT clause"
	case FeatureMerge:
		return "MERGE statement"
	case FeatureWindowFunctions:
		return "window functions"
	case FeatureCTE:
		return "common table expressions"
	case FeatureRecursiveCTE:
		return "recursive common table expressions"
	case FeatureRowLocking:
		return "row locking"
	case FeatureSkipLocked:
		return "SKIP LOCKED"
	case FeatureDistinctOn:
		return "DISTINCT ON"
	case FeatureLateral:
		return "LATERAL joins"
	case FeatureQualify:
		return "QUALIFY clause"
	case FeatureUpdateFrom:
		return "UPDATE ... FROM"
	case FeatureDeleteUsing:
		return "DELETE ... USING"
	case FeatureFullOuterJoin:
		return "FULL OUTER JOIN"
	case FeatureGroupingSets:
		return "grouping sets"
	case FeatureTableFunctions:
		return "table-valued functions"
	case FeatureGraphMatch:
		return "graph MATCH patterns"
	case FeatureIntersectAll:
		return "INTERSECT ALL"
	case FeatureExceptAll:
		return "EXCEPT ALL"
	default:
		return "unknown feature"
	}
}

// UnsupportedFeatureError reports that a tree used a SQL capability the
// target dialect cannot express.
type UnsupportedFeatureError struct {
	Feature Feature
	Dialect string
}

func (e *UnsupportedFeatureError) Error() string {
	return "arbor: " + e.Dialect + " does not support " + e.Feature.String()
}

// featureSet builds a capability map from a feature list.
func featureSet(fs ...Feature) map[Feature]bool {
	m := make(map[Feature]bool, len(fs))
	for _, f := range fs {
		m[f] = true
	}
	return m
}
