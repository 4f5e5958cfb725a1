package scenario

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// runScript evaluates a tengo generator and reads back its `bodies` global:
// an array of maps with pos, vel (two-element arrays), mass, and radius.
// Scripts get the tengo stdlib math, rand, and fmt modules.
func runScript(path string) ([]BodySpec, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: load script %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "rand", "fmt"))
	if err := script.Add("bodies", []interface{}{}); err != nil {
		return nil, fmt.Errorf("scenario: script %s: %w", path, err)
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("scenario: run script %s: %w", path, err)
	}

	raw := compiled.Get("bodies").Array()
	bodies := make([]BodySpec, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("scenario: script %s: bodies[%d] is not a map", path, i)
		}
		spec, err := decodeScriptBody(m)
		if err != nil {
			return nil, fmt.Errorf("scenario: script %s: bodies[%d]: %w", path, i, err)
		}
		bodies = append(bodies, spec)
	}
	return bodies, nil
}

func decodeScriptBody(m map[string]interface{}) (BodySpec, error) {
	var spec BodySpec
	var err error
	if spec.Pos, err = toVec2(m["pos"]); err != nil {
		return spec, fmt.Errorf("pos: %w", err)
	}
	if v, ok := m["vel"]; ok {
		if spec.Vel, err = toVec2(v); err != nil {
			return spec, fmt.Errorf("vel: %w", err)
		}
	}
	if spec.Mass, err = toFloat(m["mass"]); err != nil {
		return spec, fmt.Errorf("mass: %w", err)
	}
	if spec.Radius, err = toFloat(m["radius"]); err != nil {
		return spec, fmt.Errorf("radius: %w", err)
	}
	if v, ok := m["trail"]; ok {
		f, err := toFloat(v)
		if err != nil {
			return spec, fmt.Errorf("trail: %w", err)
		}
		spec.Trail = int(f)
	}
	return spec, nil
}

func toVec2(v interface{}) ([2]float64, error) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 2 {
		return [2]float64{}, fmt.Errorf("expected a two-element array, got %T", v)
	}
	x, err := toFloat(arr[0])
	if err != nil {
		return [2]float64{}, err
	}
	y, err := toFloat(arr[1])
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{x, y}, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
