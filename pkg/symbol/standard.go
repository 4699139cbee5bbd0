package symbol

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

func recoveryLevel(l Level) qrcode.RecoveryLevel {
	switch l {
	case LevelM:
		return qrcode.Medium
	case LevelQ:
		return qrcode.High
	case LevelH:
		return qrcode.Highest
	}
	return qrcode.Low
}

// encodeStandard builds a standard QR matrix at level l.
func encodeStandard(code string, l Level) (*Matrix, Info, error) {
	if l == LevelDetect {
		l = DefaultLevel
	}
	q, err := qrcode.New(code, recoveryLevel(l))
	if err != nil {
		return nil, Info{}, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode %q", code)
	}
	q.DisableBorder = true

	bitmap := q.Bitmap()
	m := newMatrix(len(bitmap))
	for r, row := range bitmap {
		for c, dark := range row {
			m.set(r, c, dark)
		}
	}
	return m, Info{
		Tier:    TierStandard,
		Version: fmt.Sprintf("%d", q.VersionNumber),
		Level:   l,
		Mask:    -1,
		Modules: m.Size(),
	}, nil
}
