package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category names. The organize variant creates one subfolder per category
// under the result directory; unclassifiable files go to CatOther.
const (
	CatTable     = "表格"
	CatCode      = "代码"
	CatVideo     = "视频"
	CatImage     = "图片"
	CatDoc       = "文档"
	CatArchive   = "压缩包"
	CatInstaller = "安装包"
	CatPresent   = "演示文稿"
	CatOther     = "其他"
)

// Categories is the fixed category set, in display order.
var Categories = []string{
	CatTable, CatCode, CatVideo, CatImage,
	CatDoc, CatArchive, CatInstaller, CatPresent,
}

// compoundExts are multi-part extensions that must be matched before the
// final filepath.Ext component, longest first.
var compoundExts = []string{
	".tar.bz2", ".tar.zst", ".tar.gz", ".tar.xz",
	".tbz2", ".tgz", ".txz",
}

// defaultExtMap maps each category to its extensions (with leading dot).
var defaultExtMap = map[string][]string{
	CatTable: {".xls", ".xlsx", ".csv", ".tsv", ".ods", ".numbers"},
	CatCode: {
		".py", ".ipynb", ".js", ".ts", ".jsx", ".tsx", ".java", ".kt", ".kts",
		".go", ".rs", ".rb", ".php", ".c", ".cc", ".cpp", ".h", ".hpp",
		".m", ".mm", ".swift", ".cs",
		".sh", ".bash", ".zsh", ".fish",
		".sql",
		".json", ".yaml", ".yml", ".toml", ".ini", ".cfg", ".conf",
		".xml", ".gradle", ".pom", ".sln", ".csproj",
	},
	CatVideo: {".mp4", ".mov", ".m4v", ".mkv", ".avi", ".wmv", ".flv", ".webm"},
	CatImage: {
		".jpg", ".jpeg", ".png", ".gif", ".heic", ".heif", ".webp",
		".tif", ".tiff", ".bmp", ".svg",
	},
	CatDoc: {".pdf", ".doc", ".docx", ".txt", ".rtf", ".md", ".pages", ".epub", ".mobi"},
	CatArchive: {
		".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".zst",
		".tar.gz", ".tar.bz2", ".tar.xz", ".tar.zst", ".tgz", ".tbz2", ".txz",
	},
	CatInstaller: {".dmg", ".pkg", ".mpkg", ".exe", ".msi", ".deb", ".rpm", ".apk"},
	CatPresent:   {".ppt", ".pptx", ".key", ".odp"},
}

// Classifier maps file names to categories by extension.
type Classifier struct {
	byExt map[string]string
}

// NewClassifier creates a Classifier with the default extension map.
func NewClassifier() *Classifier {
	c := &Classifier{byExt: make(map[string]string)}
	for cat, exts := range defaultExtMap {
		for _, ext := range exts {
			c.byExt[ext] = cat
		}
	}
	return c
}

// LoadOverrides merges a YAML mapping of category name to extension list
// over the defaults. Listed extensions are reassigned to the named
// category; everything else keeps its default.
//
//	表格:
//	  - parquet
//	代码:
//	  - proto
func (c *Classifier) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read categories file: %w", err)
	}

	var overrides map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse categories file: %w", err)
	}

	known := make(map[string]bool, len(Categories)+1)
	for _, cat := range Categories {
		known[cat] = true
	}
	known[CatOther] = true

	// Deterministic merge order, so conflicting overrides resolve the
	// same way on every run.
	cats := make([]string, 0, len(overrides))
	for cat := range overrides {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	for _, cat := range cats {
		if !known[cat] {
			return fmt.Errorf("unknown category in overrides: %s", cat)
		}
		for _, ext := range overrides[cat] {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			c.byExt[ext] = cat
		}
	}
	return nil
}

// Classify returns the category for a file name, or false if the file is
// unclassifiable. Dockerfiles and Makefiles count as code despite having
// no extension.
func (c *Classifier) Classify(name string) (string, bool) {
	lower := strings.ToLower(name)
	if lower == "makefile" || strings.HasPrefix(lower, "dockerfile") {
		return CatCode, true
	}

	_, ext := SplitExt(name)
	if ext == "" {
		return "", false
	}
	if cat, ok := c.byExt[strings.ToLower(ext)]; ok {
		return cat, true
	}
	return "", false
}

// SplitExt splits a file name into base and extension, treating compound
// archive extensions (.tar.gz and friends) as a single unit. The returned
// extension preserves the original case.
func SplitExt(name string) (base, ext string) {
	lower := strings.ToLower(name)
	for _, cext := range compoundExts {
		if strings.HasSuffix(lower, cext) {
			return name[:len(name)-len(cext)], name[len(name)-len(cext):]
		}
	}
	ext = filepath.Ext(name)
	return name[:len(name)-len(ext)], ext
}
