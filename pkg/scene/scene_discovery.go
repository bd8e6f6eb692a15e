package scene

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-crayfish/pkg/loaders"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// SceneInfo describes a scene without building it
type SceneInfo struct {
	ID          string // Value accepted by Load
	Name        string
	Description string
	Type        string // "builtin" or "script"
	FilePath    string // Script path (script type only)
}

// ListScripts scans dir for scene scripts. A missing directory yields no scenes.
func ListScripts(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+loaders.ScriptExtension))
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan scenes directory")
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		info, err := ParseScriptMetadata(path)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseScriptMetadata reads the header comments of a scene script:
//
//	; Scene: Glass Cubes
//	; Description: Three cubes along the diagonal
//
// The name defaults to the title-cased file name.
func ParseScriptMetadata(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       path,
		Name:     titleCase(base),
		Type:     "script",
		FilePath: path,
	}

	file, err := os.Open(path)
	if err != nil {
		return info, errors.Wrap(err, "failed to read scene script")
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ";") {
			break
		}

		content := strings.TrimSpace(strings.TrimLeft(line, ";"))
		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		}
	}

	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the scripts in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	scenes := lo.Map(BuiltinNames(), func(name string, _ int) SceneInfo {
		return SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			Description: builtins[name]().Description,
			Type:        "builtin",
		}
	})

	scripts, err := ListScripts(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list scene scripts")
	}
	return append(scenes, scripts...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-cubes" -> "Glass Cubes"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
