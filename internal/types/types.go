package types

// ArchiveKind identifies the payload format chosen at discovery time
type ArchiveKind int

const (
	SevenZip ArchiveKind = iota
	Zip
)

func (k ArchiveKind) String() string {
	switch k {
	case SevenZip:
		return "7z"
	case Zip:
		return "zip"
	default:
		return "unknown"
	}
}

// InstallRequest describes a single install attempt after payload discovery
type InstallRequest struct {
	InstallPath     string
	PayloadLocation string
	Kind            ArchiveKind
}

// ProgressEvent is sent to the front end as the "install-progress" event
type ProgressEvent struct {
	Status  string `json:"status"`
	Percent int    `json:"percent"`
}

// UnknownVersion is used when version.txt is missing or unreadable
const UnknownVersion = "unknown"

// VersionRecord is the installed version marker
type VersionRecord struct {
	Version string
}

// ProcessArguments holds the recognized command line flags
type ProcessArguments struct {
	SFXPath     string // where the self-extracting stub was launched from
	Silent      bool
	InstallPath string
}
