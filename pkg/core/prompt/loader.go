package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"alight_calculator/pkg/core/utils"
)

// LoadFromDirectory loads every prompt file under dir into r and returns how many were
// registered. Files may be strict JSON, slightly broken JSON or Hjson.
// Expected structure:
//
//	dir/
//	  narrative/
//	    deal_roi.verdict.json
//	  memo/
//	    deal_roi.json
//
// A missing directory is not an error.
func LoadFromDirectory(r *Registry, dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	loaded := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories and non-prompt files
		ext := filepath.Ext(path)
		if info.IsDir() || (ext != ".json" && ext != ".hjson") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var pt PromptTemplate
		if err := decodePrompt(ext, data, &pt); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		// Auto-generate ID from path if not specified
		if pt.ID == "" {
			pt.ID = generateIDFromPath(path, dir)
		}

		// Auto-detect category from folder name if not specified
		if pt.Category == "" {
			pt.Category = detectCategory(path, dir)
		}

		if err := r.Register(&pt); err != nil {
			return fmt.Errorf("failed to register %s: %w", pt.ID, err)
		}
		loaded++
		return nil
	})
	return loaded, err
}

func decodePrompt(ext string, data []byte, pt *PromptTemplate) error {
	if ext == ".hjson" {
		converted, err := utils.ParseHJSON(string(data))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(converted), pt)
	}
	_, err := utils.SmartParse(string(data), pt)
	return err
}

// generateIDFromPath creates a prompt ID from the file path
// e.g., "narrative/deal_roi.verdict.json" -> "narrative.deal_roi.verdict"
func generateIDFromPath(path string, baseDir string) string {
	relPath, _ := filepath.Rel(baseDir, path)
	relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath))
	relPath = strings.ReplaceAll(relPath, string(filepath.Separator), ".")
	return relPath
}

// detectCategory extracts the category from the folder structure
func detectCategory(path string, baseDir string) string {
	relPath, _ := filepath.Rel(baseDir, path)
	parts := strings.Split(relPath, string(filepath.Separator))
	if len(parts) > 1 {
		return parts[0]
	}
	return "default"
}

var templateFuncs = template.FuncMap{
	// json renders a value as compact JSON, e.g. {{json .Inputs}}
	"json": func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
}

func parseUserTemplate(pt *PromptTemplate) (*template.Template, error) {
	tmpl, err := template.New(pt.ID).Funcs(templateFuncs).Option("missingkey=error").Parse(pt.UserPromptTmpl)
	if err != nil {
		return nil, fmt.Errorf("prompt %s: failed to parse template: %w", pt.ID, err)
	}
	return tmpl, nil
}

// RenderUserPrompt executes the user prompt template of a prompt that is not registered.
func RenderUserPrompt(pt *PromptTemplate, ctx *PromptExecutionContext) (string, error) {
	if pt.UserPromptTmpl == "" {
		return "", nil
	}
	tmpl, err := parseUserTemplate(pt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx.Variables); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
