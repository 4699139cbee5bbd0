package symbol

import "github.com/matzehuels/qrsheet/pkg/errors"

// Tier is the symbology family of an encoded symbol.
type Tier string

const (
	TierMicro    Tier = "micro"
	TierStandard Tier = "standard"
)

// Info describes the symbol chosen for a code.
type Info struct {
	Tier    Tier   `json:"tier"`
	Version string `json:"version"` // M1..M4 or 1..40
	Level   Level  `json:"level"`
	Mask    int    `json:"mask"` // -1 when chosen by the standard encoder
	Modules int    `json:"modules"`
}

// Select encodes code with the micro-first policy. fallback is the error
// level used when a standard symbol is needed.
func Select(code string, fallback Level) (*Matrix, Info, error) {
	if code == "" {
		return nil, Info{}, errors.New(errors.ErrCodeInvalidInput, "cannot encode an empty code")
	}
	if m, info, ok := encodeMicro(code); ok {
		return m, info, nil
	}
	return encodeStandard(code, fallback)
}
