package engine

import (
	"github.com/ark-forge/mcp-eu-ai-act/correlate"
	"github.com/ark-forge/mcp-eu-ai-act/depgraph"
	"github.com/ark-forge/mcp-eu-ai-act/detect"
	"github.com/ark-forge/mcp-eu-ai-act/regulation"
	"github.com/ark-forge/mcp-eu-ai-act/scanner"
)

type AIFile struct {
	File       string   `json:"file"`
	Frameworks []string `json:"frameworks"`
}

// ScanResult lists AI framework detections. DetectedModels and AIFiles are
// two views of the same detections and include propagated files.
type ScanResult struct {
	ProjectPath     string                 `json:"project_path"`
	FilesScanned    int                    `json:"files_scanned"`
	AIFiles         []AIFile               `json:"ai_files"`
	DetectedModels  *detect.Index          `json:"detected_models"`
	PropagatedFiles []depgraph.Propagation `json:"propagated_files,omitempty"`

	files *detect.FileMap
}

// FileMap is the file → frameworks view.
func (r *ScanResult) FileMap() map[string][]string {
	out := make(map[string][]string, len(r.AIFiles))
	for _, f := range r.AIFiles {
		out[f.File] = f.Frameworks
	}
	return out
}

// fileMap keeps scan order when the result came from a scan and rebuilds
// from AIFiles when it was decoded.
func (r *ScanResult) fileMap() *detect.FileMap {
	if r.files != nil {
		return r.files
	}
	fm := detect.NewFileMap()
	for _, f := range r.AIFiles {
		fm.Register(f.File)
		for _, c := range f.Frameworks {
			fm.Add(f.File, c)
		}
	}
	return fm
}

// models is DetectedModels, or the index implied by AIFiles when a decoded
// result carries no detected_models.
func (r *ScanResult) models() *detect.Index {
	if r.DetectedModels != nil {
		return r.DetectedModels
	}
	return r.fileMap().Index()
}

func newScanResult(res *scanner.Result) *ScanResult {
	out := &ScanResult{
		FilesScanned:    res.FilesScanned,
		AIFiles:         []AIFile{},
		DetectedModels:  res.Index,
		PropagatedFiles: res.Propagated,
		ProjectPath:     res.Root,
		files:           res.Files,
	}
	for _, e := range res.Files.Entries() {
		out.AIFiles = append(out.AIFiles, AIFile{File: e.File, Frameworks: e.Categories})
	}
	return out
}

type FlaggedFile struct {
	File       string   `json:"file"`
	Categories []string `json:"categories"`
}

type ProcessingSummary struct {
	ProcessesPersonalData bool                    `json:"processes_personal_data"`
	Categories            []string                `json:"categories"`
	Obligations           []regulation.Obligation `json:"obligations"`
}

// GDPRScanResult lists personal-data detections.
type GDPRScanResult struct {
	FilesScanned      int                    `json:"files_scanned"`
	FlaggedFiles      []FlaggedFile          `json:"flagged_files"`
	DetectedPatterns  *detect.Index          `json:"detected_patterns"`
	ProcessingSummary ProcessingSummary      `json:"processing_summary"`
	PropagatedFiles   []depgraph.Propagation `json:"propagated_files,omitempty"`

	files *detect.FileMap
}

// FileMap is the file → categories view.
func (r *GDPRScanResult) FileMap() map[string][]string {
	out := make(map[string][]string, len(r.FlaggedFiles))
	for _, f := range r.FlaggedFiles {
		out[f.File] = f.Categories
	}
	return out
}

func (r *GDPRScanResult) fileMap() *detect.FileMap {
	if r.files != nil {
		return r.files
	}
	fm := detect.NewFileMap()
	for _, f := range r.FlaggedFiles {
		fm.Register(f.File)
		for _, c := range f.Categories {
			fm.Add(f.File, c)
		}
	}
	return fm
}

func newGDPRScanResult(kb *regulation.KnowledgeBase, res *scanner.Result) *GDPRScanResult {
	out := &GDPRScanResult{
		FilesScanned:     res.FilesScanned,
		FlaggedFiles:     []FlaggedFile{},
		DetectedPatterns: res.Index,
		ProcessingSummary: ProcessingSummary{
			ProcessesPersonalData: res.Index.Len() > 0,
			Categories:            res.Index.Categories(),
			Obligations:           []regulation.Obligation{},
		},
		PropagatedFiles: res.Propagated,
		files:           res.Files,
	}
	if out.ProcessingSummary.Categories == nil {
		out.ProcessingSummary.Categories = []string{}
	}
	for _, e := range res.Files.Entries() {
		out.FlaggedFiles = append(out.FlaggedFiles, FlaggedFile{File: e.File, Categories: e.Categories})
	}
	for _, c := range out.ProcessingSummary.Categories {
		if o, ok := kb.Obligation(c); ok {
			out.ProcessingSummary.Obligations = append(out.ProcessingSummary.Obligations, *o)
		}
	}
	return out
}

// Summary counts overlap findings per priority.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// CombinedResult is the cross-regulation view of one project.
type CombinedResult struct {
	RiskCategory string              `json:"risk_category"`
	AIAct        *ScanResult         `json:"eu_ai_act"`
	GDPR         *GDPRScanResult     `json:"gdpr"`
	Findings     []correlate.Finding `json:"overlap_files"`
	Insight      string              `json:"insight"`
	Summary      Summary             `json:"summary"`
}
