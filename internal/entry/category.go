package entry

// Category classifies files by what they are for, keyed on extension.
type Category string

const (
	CategorySource     Category = "source"
	CategoryConfig     Category = "config"
	CategoryDocs       Category = "docs"
	CategoryMedia      Category = "media"
	CategoryData       Category = "data"
	CategoryArchive    Category = "archive"
	CategoryExecutable Category = "executable"
)

// categoryTable maps lowercase extensions to categories. An extension may
// belong to more than one category (sh is both source and executable).
var categoryTable = map[string][]Category{
	// source
	"rs": {CategorySource}, "js": {CategorySource}, "jsx": {CategorySource},
	"ts": {CategorySource}, "tsx": {CategorySource}, "py": {CategorySource},
	"go": {CategorySource}, "c": {CategorySource}, "h": {CategorySource},
	"cpp": {CategorySource}, "hpp": {CategorySource}, "cc": {CategorySource},
	"cs": {CategorySource}, "java": {CategorySource}, "kt": {CategorySource},
	"kts": {CategorySource}, "swift": {CategorySource}, "rb": {CategorySource},
	"php": {CategorySource}, "lua": {CategorySource},
	"sh":   {CategorySource, CategoryExecutable},
	"bash": {CategorySource}, "zsh": {CategorySource}, "fish": {CategorySource},
	"ps1": {CategorySource},

	// config
	"toml": {CategoryConfig}, "yaml": {CategoryConfig}, "yml": {CategoryConfig},
	"json": {CategoryConfig}, "ini": {CategoryConfig}, "env": {CategoryConfig},
	"conf": {CategoryConfig}, "cfg": {CategoryConfig}, "properties": {CategoryConfig},

	// docs
	"md": {CategoryDocs}, "txt": {CategoryDocs}, "rst": {CategoryDocs},
	"adoc": {CategoryDocs}, "pdf": {CategoryDocs}, "doc": {CategoryDocs},
	"docx": {CategoryDocs},

	// media
	"jpg": {CategoryMedia}, "jpeg": {CategoryMedia}, "png": {CategoryMedia},
	"gif": {CategoryMedia}, "webp": {CategoryMedia}, "bmp": {CategoryMedia},
	"svg": {CategoryMedia}, "mp3": {CategoryMedia}, "wav": {CategoryMedia},
	"flac": {CategoryMedia}, "ogg": {CategoryMedia}, "mp4": {CategoryMedia},
	"mov": {CategoryMedia}, "mkv": {CategoryMedia}, "avi": {CategoryMedia},

	// data
	"csv": {CategoryData}, "tsv": {CategoryData}, "xml": {CategoryData},
	"sqlite": {CategoryData}, "db": {CategoryData}, "parquet": {CategoryData},
	"arrow": {CategoryData},

	// archive
	"zip": {CategoryArchive}, "tar": {CategoryArchive}, "gz": {CategoryArchive},
	"bz2": {CategoryArchive}, "xz": {CategoryArchive}, "7z": {CategoryArchive},
	"rar": {CategoryArchive},

	// executable
	"exe": {CategoryExecutable}, "app": {CategoryExecutable},
	"bat": {CategoryExecutable}, "cmd": {CategoryExecutable},
}

// ParseCategory validates a category name.
func ParseCategory(name string) (Category, bool) {
	switch Category(name) {
	case CategorySource, CategoryConfig, CategoryDocs, CategoryMedia,
		CategoryData, CategoryArchive, CategoryExecutable:
		return Category(name), true
	}
	return "", false
}

// CategoriesOf returns the categories of an extension. A file with no
// extension or an unknown extension belongs to no category.
func CategoriesOf(ext string) []Category {
	return categoryTable[ext]
}

// HasCategory reports whether the entry's extension maps to the category.
// Directories belong to no category.
func (e Entry) HasCategory(c Category) bool {
	if e.Kind != KindFile {
		return false
	}
	for _, got := range CategoriesOf(e.Ext()) {
		if got == c {
			return true
		}
	}
	return false
}
