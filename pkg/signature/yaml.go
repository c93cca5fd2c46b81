package signature

// yamlSignature is the intermediate struct for parsing the signature file
// format. Maps YAML fields to types.Signature.
type yamlSignature struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	MIME       string   `yaml:"mime"`
	Extensions []string `yaml:"extensions,omitempty"`
	Offset     int      `yaml:"offset,omitempty"`
	Pattern    string   `yaml:"pattern"`
	References []string `yaml:"references,omitempty"`
}

// yamlSignaturesFile represents the top-level structure of a signature YAML
// file: a "signatures" array whose order is the table's priority order.
type yamlSignaturesFile struct {
	Signatures []yamlSignature `yaml:"signatures"`
}
