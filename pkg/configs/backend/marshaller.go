package backend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// load novel server config from a file.
//
// args:
//   - filepath: filepath refers a config file.
//
// returns *BackendConfig, error:
//
//	When loading success, returns `(*BackendConfig, nil)`.
//	Otherwise, returns `(nil, error)`.
func LoadBackendConfig(filepath string) (*BackendConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

// Unmarshal parses yaml and seals it.
//
// Misconfigurations are reported as error.
func Unmarshal(conf []byte) (out *BackendConfig, err error) {
	var _out *BackendConfigMarshall
	if err := yaml.Unmarshal(conf, &_out); err != nil {
		return nil, err
	}
	if _out == nil {
		return nil, fmt.Errorf("config is empty")
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("misconfiguration: %v", r)
		}
	}()
	return TrySeal(_out), nil
}
