package detect

import (
	"errors"

	"github.com/tidwall/gjson"
)

var errInvalidManifest = errors.New("package.json is not valid JSON")

// parseManifest reads the name and version fields of a package.json.
func parseManifest(content []byte) (string, string, error) {
	if !gjson.ValidBytes(content) {
		return "", "", errInvalidManifest
	}

	manifest := gjson.ParseBytes(content)
	if !manifest.IsObject() {
		return "", "", errInvalidManifest
	}

	return manifestField(manifest, "name", DefaultProjectName),
		manifestField(manifest, "version", DefaultProjectVersion),
		nil
}

func manifestField(manifest gjson.Result, key string, fallback string) string {
	value := manifest.Get(key)
	if value.Type != gjson.String || value.Str == "" {
		return fallback
	}

	return value.Str
}
