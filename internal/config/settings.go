package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TargetKind is the declared kind of a benchmark target
type TargetKind string

const (
	// KindFile is a regular file on a mounted filesystem
	KindFile TargetKind = "file"
	// KindDevice is a block device
	KindDevice TargetKind = "device"
	// KindDirectory is a directory fio creates its own files in
	KindDirectory TargetKind = "directory"
	// KindRBD is a Ceph RADOS block device pool
	KindRBD TargetKind = "rbd"
)

// TargetKinds returns every recognized target kind
func TargetKinds() []TargetKind {
	return []TargetKind{KindFile, KindDevice, KindDirectory, KindRBD}
}

const (
	// DefaultTemplate is the generic fio job template shipped with the tool
	DefaultTemplate = "./fio-job-template.fio"
	// CephTemplate is the job template meant for rbd targets
	CephTemplate = "./fio-job-template-ceph.fio"
	// LoopItemRWMixRead marks the read/write mix as a loop dimension
	LoopItemRWMixRead = "rwmixread"
)

// StringList accepts either a single scalar or a sequence when decoded
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = StringList{value.Value}
		return nil
	}
	var items []string
	if err := value.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*l = items
	return nil
}

// Settings is the configuration bundle for a single benchmark run.
//
// Only the fields up to LoopItems are inspected by the preflight gate; the
// remaining fields are carried through for the job launcher.
type Settings struct {
	Template    string     `json:"template" yaml:"template"`
	Type        TargetKind `json:"type" yaml:"type"`
	Target      StringList `json:"target" yaml:"target"`
	Size        string     `json:"size,omitempty" yaml:"size,omitempty"`
	Output      string     `json:"output" yaml:"output"`
	Mode        StringList `json:"mode" yaml:"mode"`
	Mixed       []string   `json:"mixed,omitempty" yaml:"mixed,omitempty"`
	RWMixRead   []int      `json:"rwmixread,omitempty" yaml:"rwmixread,omitempty"`
	Destructive bool       `json:"destructive" yaml:"destructive"`
	Remote      string     `json:"remote,omitempty" yaml:"remote,omitempty"`
	CephPool    string     `json:"ceph_pool,omitempty" yaml:"ceph_pool,omitempty"`
	LoopItems   []string   `json:"loop_items,omitempty" yaml:"loop_items,omitempty"`

	IODepth      []int             `json:"iodepth,omitempty" yaml:"iodepth,omitempty"`
	NumJobs      []int             `json:"numjobs,omitempty" yaml:"numjobs,omitempty"`
	BlockSize    []string          `json:"block_size,omitempty" yaml:"block_size,omitempty"`
	Runtime      int               `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Engine       string            `json:"engine,omitempty" yaml:"engine,omitempty"`
	Direct       int               `json:"direct,omitempty" yaml:"direct,omitempty"`
	Loops        int               `json:"loops,omitempty" yaml:"loops,omitempty"`
	Precondition bool              `json:"precondition,omitempty" yaml:"precondition,omitempty"`
	Extra        map[string]string `json:"extra_opts,omitempty" yaml:"extra_opts,omitempty"`
}

// DefaultSettings returns the settings every loaded file is layered on
func DefaultSettings() *Settings {
	return &Settings{
		Template:  DefaultTemplate,
		Mode:      StringList{"randread"},
		Mixed:     []string{"readwrite", "rw", "randrw"},
		LoopItems: []string{"iodepth", "numjobs"},
		IODepth:   []int{1, 2, 4, 8, 16, 32, 64},
		NumJobs:   []int{1, 2, 4, 8, 16, 32, 64},
		BlockSize: []string{"4k"},
		Runtime:   60,
		Engine:    "libaio",
		Direct:    1,
		Loops:     1,
	}
}

// CheckRequired reports the fields every run needs that are still unset
// once the file and the command line have been merged
func (s *Settings) CheckRequired() error {
	var missing []ValidationError
	if s.Type == "" {
		missing = append(missing, ValidationError{Path: "type", Message: "is required"})
	}
	if len(s.Target) == 0 {
		missing = append(missing, ValidationError{Path: "target", Message: "is required"})
	}
	if len(missing) > 0 {
		return &SettingsError{Errors: missing}
	}
	return nil
}

// IsRemote reports whether the run is dispatched to a remote host list
func (s *Settings) IsRemote() bool {
	return s.Remote != ""
}

// HasRWMixRead reports whether at least one read/write mix ratio is set
func (s *Settings) HasRWMixRead() bool {
	return len(s.RWMixRead) > 0
}

// IsMixed reports whether mode is configured as a mixed read/write mode
func (s *Settings) IsMixed(mode string) bool {
	return stringInSlice(mode, s.Mixed)
}

// CountLoopItem returns how many times item occurs in LoopItems
func (s *Settings) CountLoopItem(item string) int {
	count := 0
	for _, li := range s.LoopItems {
		if li == item {
			count++
		}
	}
	return count
}

// stringInSlice checks if a string is in a slice
func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
