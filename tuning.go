package flightpath

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/solarlune/flightpath/math32"
	"gopkg.in/yaml.v3"
)

//go:embed tuning.yaml
var defaultTuningData []byte

// Tuning holds every constant the sequence runs on. A Tuning is read from YAML; DefaultTuning holds the values
// the sequence was designed with.
type Tuning struct {
	MaxFrameDelta float32        `yaml:"maxFrameDelta"` // Frame time is clamped to this many seconds
	Corridor      CorridorTuning `yaml:"corridor"`
	Flight        FlightTuning   `yaml:"flight"`
	Follow        FollowTuning   `yaml:"follow"`
	Handoff       HandoffTuning  `yaml:"handoff"`
	Garden        GardenTuning   `yaml:"garden"`
}

// DefaultTuning returns a fresh copy of the embedded default tuning. It panics if the embedded file is invalid,
// which would be a build error.
func DefaultTuning() *Tuning {
	tuning, err := decodeTuning(bytes.NewReader(defaultTuningData), &Tuning{})
	if err != nil {
		panic(fmt.Errorf("flightpath: embedded tuning: %w", err))
	}
	return tuning
}

// LoadTuning reads a Tuning from YAML. Fields the YAML leaves out keep their default values, and unknown fields are
// an error. The result is validated before it's returned.
func LoadTuning(r io.Reader) (*Tuning, error) {

	tuning, err := decodeTuning(r, DefaultTuning())
	if err != nil {
		return nil, err
	}

	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	return tuning, nil

}

func decodeTuning(r io.Reader, into *Tuning) (*Tuning, error) {

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(into); err != nil && err != io.EOF {
		return nil, fmt.Errorf("flightpath: decoding tuning: %w", err)
	}

	return into, nil

}

// rejectUnknownKeys fails if the mapping in node has a key that none of shape's yaml tags name. Custom unmarshalers
// decode through yaml.Node.Decode, which doesn't carry the decoder's KnownFields setting, so they check here instead.
func rejectUnknownKeys(node *yaml.Node, shape any) error {

	if node.Kind != yaml.MappingNode {
		return nil
	}

	known := map[string]bool{}
	t := reflect.TypeOf(shape)
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name == "" {
			name = strings.ToLower(t.Field(i).Name)
		}
		known[name] = true
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !known[key.Value] {
			return fmt.Errorf("line %d: field %s not found in type %s", key.Line, key.Value, t)
		}
	}

	return nil

}

// Validate checks every part of the Tuning, returning the first *ConfigError found.
func (tuning *Tuning) Validate() error {

	if !(tuning.MaxFrameDelta > 0) || !math32.IsFinite(tuning.MaxFrameDelta) {
		return configErr("maxFrameDelta", fmt.Errorf("%v: %w", tuning.MaxFrameDelta, ErrNonPositiveDuration))
	}

	validators := []func() error{
		tuning.Corridor.Validate,
		tuning.Flight.Validate,
		tuning.Follow.Validate,
		tuning.Handoff.Validate,
		tuning.Garden.Validate,
	}

	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}

	return nil

}

// Marshal writes the Tuning out as YAML.
func (tuning *Tuning) Marshal(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(tuning); err != nil {
		return err
	}
	return encoder.Close()
}
