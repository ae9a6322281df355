package model

// SelectedFile is the single candidate file chosen by the user.
type SelectedFile struct {
	Path     string
	Name     string
	Size     int64
	MIMEType string // detected from content, the analogue of a browser-reported type
	Pages    int    // 0 when unknown
}

// CVAnalysis is the structured record the backend extracts from a CV.
type CVAnalysis struct {
	Location              string `json:"location"`
	JobBranch             string `json:"jobBranch"`
	Education             string `json:"education"`
	TotalExperienceYears  int    `json:"totalExperienceYears"`
	BranchExperienceYears int    `json:"branchExperienceYears"`
	HardSkills            string `json:"hardSkills"`
	SoftSkills            string `json:"softSkills"`
}
