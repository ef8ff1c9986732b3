package logging

import "time"

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Field helpers for common counting concerns

func BatchID(id string) Field {
	return String("batch_id", id)
}

func StrategyName(name string) Field {
	return String("strategy", name)
}

func VertexID(v int) Field {
	return Int("vertex", v)
}

func VertexCount(n int) Field {
	return Int("vertices", n)
}

func TriangleCount(n int) Field {
	return Int("triangles", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
