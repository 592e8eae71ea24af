package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// RenderOutput prints data in the format selected by the --output flag.
func RenderOutput(data interface{}) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(data)
	case OutputFormatYAML:
		encoded, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		fmt.Print(string(encoded))

		return nil
	default:
		return renderTable(data)
	}
}

// RenderBody decodes a raw JSON response body and prints it.
func RenderBody(body []byte) error {
	if len(body) == 0 {
		return nil
	}

	var data interface{}

	err := json.Unmarshal(body, &data)
	if err != nil {
		fmt.Println(string(body))

		return nil
	}

	return RenderOutput(data)
}

// renderTable flattens the payload into rows and prints one table.
func renderTable(data interface{}) error {
	rows, heading, err := tableRows(data)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No results")

		return nil
	}

	columns := columnSet(rows)

	if heading != "" {
		fmt.Println(heading + ":")
	}

	header := make([]interface{}, len(columns))
	for i, column := range columns {
		header[i] = column
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(header...)

	for _, row := range rows {
		cells := make([]interface{}, len(columns))
		for i, column := range columns {
			cells[i] = row[column]
		}

		_ = table.Append(cells...)
	}

	return table.Render()
}

// tableRows normalizes any decoded payload into flat rows. A mapping with a
// single list-valued key renders that list under the key as a heading.
func tableRows(data interface{}) ([]map[string]string, string, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, "", fmt.Errorf("encoding output: %w", err)
	}

	var decoded interface{}

	err = json.Unmarshal(encoded, &decoded)
	if err != nil {
		return nil, "", fmt.Errorf("decoding output: %w", err)
	}

	switch value := decoded.(type) {
	case []interface{}:
		return flattenList(value), "", nil
	case map[string]interface{}:
		if len(value) == 1 {
			for key, inner := range value {
				if list, ok := inner.([]interface{}); ok {
					return flattenList(list), key, nil
				}
			}
		}

		return []map[string]string{flattenMap(value, "")}, "", nil
	case nil:
		return nil, "", nil
	default:
		return []map[string]string{{"value": fmt.Sprint(value)}}, "", nil
	}
}

func flattenList(list []interface{}) []map[string]string {
	rows := make([]map[string]string, 0, len(list))

	for _, item := range list {
		if mapping, ok := item.(map[string]interface{}); ok {
			rows = append(rows, flattenMap(mapping, ""))

			continue
		}

		rows = append(rows, map[string]string{"value": fmt.Sprint(item)})
	}

	return rows
}

// flattenMap joins nested keys with underscores, counts lists of mappings,
// and comma-joins scalar lists.
func flattenMap(mapping map[string]interface{}, prefix string) map[string]string {
	flat := make(map[string]string, len(mapping))

	for key, value := range mapping {
		name := key
		if prefix != "" {
			name = prefix + "_" + key
		}

		switch inner := value.(type) {
		case map[string]interface{}:
			for k, v := range flattenMap(inner, name) {
				flat[k] = v
			}
		case []interface{}:
			flat[name] = flattenSlice(inner)
		default:
			flat[name] = fmt.Sprint(value)
		}
	}

	return flat
}

func flattenSlice(list []interface{}) string {
	allMaps := len(list) > 0

	for _, item := range list {
		if _, ok := item.(map[string]interface{}); !ok {
			allMaps = false

			break
		}
	}

	if allMaps {
		return fmt.Sprintf("%d items", len(list))
	}

	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = fmt.Sprint(item)
	}

	return strings.Join(parts, ", ")
}

func columnSet(rows []map[string]string) []string {
	seen := make(map[string]bool)

	var columns []string

	for _, row := range rows {
		for column := range row {
			if !seen[column] {
				seen[column] = true

				columns = append(columns, column)
			}
		}
	}

	sort.Strings(columns)

	return columns
}
