package media

// Upload folders inside the public bucket, one per media kind the
// admin dashboard uploads.
const (
	FolderProfile  = "profile"
	FolderProjects = "projects"
	FolderResumes  = "resumes"
)

// NormalizeFolder maps a requested folder to a known bucket folder.
// An empty request defaults to the projects folder.
func NormalizeFolder(folder string) (string, bool) {
	switch folder {
	case "":
		return FolderProjects, true
	case FolderProfile, FolderProjects, FolderResumes:
		return folder, true
	default:
		return "", false
	}
}
