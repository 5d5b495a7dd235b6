package export

import (
	"encoding/json"
	"os"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// ExportJSON serializes a to the judge's Map JSON format (rooms,
// startingRoom, connections) with 2-space indentation for readability.
func ExportJSON(a *aedificium.Aedificium) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// ExportJSONCompact serializes a to the Map JSON format without
// indentation, suitable for an HTTP request body.
func ExportJSONCompact(a *aedificium.Aedificium) ([]byte, error) {
	return json.Marshal(a)
}

// SaveJSONToFile exports a to a JSON file with 0644 permissions.
func SaveJSONToFile(a *aedificium.Aedificium, filepath string) error {
	data, err := ExportJSON(a)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile exports a to a compact JSON file with 0644
// permissions.
func SaveJSONCompactToFile(a *aedificium.Aedificium, filepath string) error {
	data, err := ExportJSONCompact(a)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
