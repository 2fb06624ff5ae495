package catalog

// File is the decoded form of a catalog file.
type File struct {
	// Version of the catalog format. Defaults to "1".
	Version string `yaml:"version,omitempty" hcl:"version,optional"`
	// Packages are Go package patterns whose types the entries may name.
	Packages []string `yaml:"packages,omitempty" hcl:"packages,optional" validate:"dive,required"`
	// Entries are the descriptors of the catalog, in declaration order.
	Entries []Entry `yaml:"descriptors" hcl:"descriptor,block" validate:"required,min=1,dive"`
}

// Entry stages one named descriptor.
type Entry struct {
	Name        string            `yaml:"name" hcl:"name,label" validate:"required,excludesall=@<>:*?"`
	Represented string            `yaml:"represented" hcl:"represented" validate:"required"`
	TreatAs     string            `yaml:"treat_as,omitempty" hcl:"treat_as,optional"`
	Children    []string          `yaml:"children,omitempty" hcl:"children,optional" validate:"dive,required"`
	Overrides   map[string]string `yaml:"overrides,omitempty" hcl:"overrides,optional" validate:"dive,keys,required,endkeys,required,ne=?"`
}

const (
	refPrefix = "@"
	absentRef = "?"
)
