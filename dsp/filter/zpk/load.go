package zpk

import (
	"fmt"
	"io"
	"os"

	json "github.com/json-iterator/go"
)

// fileFormat is the on-disk layout of a saved system. Roots are either bare
// numbers (real) or [re, im] pairs.
type fileFormat struct {
	Z []any    `json:"z"`
	P []any    `json:"p"`
	K *float64 `json:"k"`
}

// Load decodes a system from JSON of the form
//
//	{"z": [[re, im], ...], "p": [[re, im], ...], "k": 1.0}
//
// The gain is required; missing zero or pole lists are empty.
func Load(r io.Reader) (ZPK, error) {
	var f fileFormat
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return ZPK{}, fmt.Errorf("zpk: decode: %w", err)
	}

	if f.K == nil {
		return ZPK{}, fmt.Errorf("%w: missing gain \"k\"", ErrInvalidSystem)
	}

	z, err := decodeRoots("z", f.Z)
	if err != nil {
		return ZPK{}, err
	}

	p, err := decodeRoots("p", f.P)
	if err != nil {
		return ZPK{}, err
	}

	sys := ZPK{Z: z, P: p, K: *f.K}

	return sys, sys.Validate()
}

// LoadFile reads a system saved with the layout accepted by Load.
func LoadFile(path string) (ZPK, error) {
	fh, err := os.Open(path)
	if err != nil {
		return ZPK{}, fmt.Errorf("zpk: %w", err)
	}
	defer fh.Close()

	sys, err := Load(fh)
	if err != nil {
		return ZPK{}, fmt.Errorf("%s: %w", path, err)
	}

	return sys, nil
}

func decodeRoots(field string, raw []any) ([]complex128, error) {
	out := make([]complex128, 0, len(raw))
	for i, v := range raw {
		switch x := v.(type) {
		case float64:
			out = append(out, complex(x, 0))
		case []any:
			if len(x) != 2 {
				return nil, fmt.Errorf("%w: %s[%d] needs [re, im], got %d values", ErrInvalidSystem, field, i, len(x))
			}

			re, okRe := x[0].(float64)
			im, okIm := x[1].(float64)
			if !okRe || !okIm {
				return nil, fmt.Errorf("%w: %s[%d] is not numeric", ErrInvalidSystem, field, i)
			}

			out = append(out, complex(re, im))
		default:
			return nil, fmt.Errorf("%w: %s[%d] has unsupported type %T", ErrInvalidSystem, field, i, v)
		}
	}

	return out, nil
}
