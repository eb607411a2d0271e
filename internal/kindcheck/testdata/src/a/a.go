package a

type SerialKind int

const (
	KindUnit SerialKind = iota
	KindInteger
	KindString
)

func exhaustive(k SerialKind) string {
	switch k {
	case KindUnit:
		return "unit"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	}

	return ""
}

func withDefault(k SerialKind) string {
	switch k {
	case KindUnit:
		return "unit"
	default:
		return "other"
	}
}

func missing(k SerialKind) string {
	switch k { // want `switch is missing the KindString kind`
	case KindUnit:
		return "unit"
	case KindInteger:
		return "integer"
	}

	return ""
}

func unrelated(n int) string {
	switch n {
	case 0:
		return "zero"
	}

	return ""
}
