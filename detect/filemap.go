package detect

// FileEntry is one row of a FileMap.
type FileEntry struct {
	File       string
	Categories []string
}

// FileMap is the inverse of Index: file to matched categories, in insertion
// order.
type FileMap struct {
	order []string
	cats  map[string][]string
}

func NewFileMap() *FileMap {
	return &FileMap{cats: make(map[string][]string)}
}

// FileMapFrom builds a FileMap from a plain map. Entries are ordered by path
// so the result does not depend on map iteration. A file with an empty
// category list is still present.
func FileMapFrom(m map[string][]string) *FileMap {
	fm := NewFileMap()
	for _, file := range sortedKeys(m) {
		fm.Register(file)
		for _, c := range m[file] {
			fm.Add(file, c)
		}
	}
	return fm
}

// Register lists file with no categories unless it is already present.
func (m *FileMap) Register(file string) {
	if _, ok := m.cats[file]; ok {
		return
	}
	m.order = append(m.order, file)
	m.cats[file] = []string{}
}

// Add records category for file once.
func (m *FileMap) Add(file, category string) {
	existing, ok := m.cats[file]
	if !ok {
		m.order = append(m.order, file)
	}
	for _, c := range existing {
		if c == category {
			return
		}
	}
	m.cats[file] = append(existing, category)
}

func (m *FileMap) Categories(file string) []string {
	return append([]string(nil), m.cats[file]...)
}

func (m *FileMap) Has(file string) bool {
	_, ok := m.cats[file]
	return ok
}

func (m *FileMap) Len() int {
	return len(m.order)
}

func (m *FileMap) Entries() []FileEntry {
	out := make([]FileEntry, 0, len(m.order))
	for _, f := range m.order {
		out = append(out, FileEntry{File: f, Categories: m.Categories(f)})
	}
	return out
}

// Index rebuilds the category view from the map.
func (m *FileMap) Index() *Index {
	x := NewIndex()
	for _, f := range m.order {
		for _, c := range m.cats[f] {
			x.Add(c, f)
		}
	}
	return x
}
