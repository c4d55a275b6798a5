package storage

import (
	"fmt"
	"testing"

	"github.com/pixil98/go-testutil"
)

type checkedSpec struct {
	err error
}

func (s *checkedSpec) Validate() error {
	return s.err
}

func TestAsset_Validate(t *testing.T) {
	ok := &checkedSpec{}
	broken := &checkedSpec{err: fmt.Errorf("layers do not match the map size")}

	tests := map[string]struct {
		version uint
		id      Identifier
		spec    *checkedSpec
		expErrs []string
	}{
		"map asset":           {version: 1, id: "house_interior", spec: ok},
		"hyphenated id":       {version: 1, id: "cave-2", spec: ok},
		"missing version":     {id: "cave", spec: ok, expErrs: []string{"version must be set"}},
		"future version":      {version: 2, id: "cave", spec: ok, expErrs: []string{"unsupported version 2 (newest is 1)"}},
		"missing id":          {version: 1, spec: ok, expErrs: []string{"id must be set"}},
		"id with spaces":      {version: 1, id: "house interior", spec: ok, expErrs: []string{"id must be alphanumeric"}},
		"id with punctuation": {version: 1, id: "cave!", spec: ok, expErrs: []string{"id must be alphanumeric"}},
		"missing spec":        {version: 1, id: "cave", expErrs: []string{"spec must be set"}},
		"spec rejected":       {version: 1, id: "cave", spec: broken, expErrs: []string{"layers do not match the map size"}},
		"every problem reported": {
			spec:    broken,
			expErrs: []string{"version must be set", "id must be set", "layers do not match"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := Asset[*checkedSpec]{Version: tt.version, Identifier: tt.id, Spec: tt.spec}
			err := a.Validate()

			if len(tt.expErrs) == 0 {
				testutil.AssertEqual(t, "err", err, nil)
				return
			}
			for _, exp := range tt.expErrs {
				testutil.AssertErrorContains(t, err, exp)
			}
		})
	}
}

func TestIdentifier_String(t *testing.T) {
	testutil.AssertEqual(t, "id", Identifier("overworld").String(), "overworld")
}
