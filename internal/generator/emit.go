package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MichalMitros/pdsa-generator/internal/output"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"golang.org/x/text/encoding"
)

//go:generate mockery --name Archiver --filename archiver.go
//go:generate mockery --name Publisher --filename publisher.go

// Default output file names.
const (
	DefaultCampaignFile      = "campaign.csv"
	DefaultAdCustomizersFile = "adcustomizers.csv"
	DefaultPageFeedFile      = "pagefeed.csv"
)

// Archiver packs output files.
type Archiver interface {
	Archive(ctx context.Context, dst string, items ...output.Item) (*output.Archive, error)
}

// Publisher uploads output files to remote store.
type Publisher interface {
	Upload(ctx context.Context, localPath, name string) error
}

// Files are output locations of Emitter.
type Files struct {
	// Folder is output folder.
	Folder string
	// ImageFolder is folder of generated images archived with campaign output.
	ImageFolder   string
	Campaign      string
	AdCustomizers string
	PageFeed      string
	// Prefix is object name prefix of published campaign output.
	Prefix string
}

// Output is emitted generation output.
type Output struct {
	CampaignPath      string
	AdCustomizersPath string
	PageFeedPath      string
	// CampaignObject is object name of published campaign output.
	CampaignObject string
	Archive        *output.Archive
}

// EmitterOption is custom configuration of Emitter.
type EmitterOption func(e *Emitter)

// Emitter writes generation results.
type Emitter struct {
	files     Files
	archiver  Archiver
	publisher Publisher
}

// NewEmitter returns new Emitter. Empty file names are replaced with defaults.
func NewEmitter(files Files, ops ...EmitterOption) *Emitter {
	if files.Campaign == "" {
		files.Campaign = DefaultCampaignFile
	}
	if files.AdCustomizers == "" {
		files.AdCustomizers = DefaultAdCustomizersFile
	}
	if files.PageFeed == "" {
		files.PageFeed = DefaultPageFeedFile
	}

	e := &Emitter{files: files}
	for _, op := range ops {
		op(e)
	}

	return e
}

// CampaignPath returns local path of campaign output.
func (e *Emitter) CampaignPath() string {
	return filepath.Join(e.files.Folder, e.files.Campaign)
}

// CampaignObject returns object name of published campaign output.
func (e *Emitter) CampaignObject() string {
	return path.Join(e.files.Prefix, e.files.Campaign)
}

// Emit writes campaign, ad customizer and page feed files, publishes campaign output
// and archives it with images.
func (e *Emitter) Emit(ctx context.Context, result *Result) (*Output, error) {
	out := &Output{
		CampaignPath:      e.CampaignPath(),
		AdCustomizersPath: filepath.Join(e.files.Folder, e.files.AdCustomizers),
		PageFeedPath:      filepath.Join(e.files.Folder, e.files.PageFeed),
	}

	if err := writeFiles(
		stagedFile{name: "campaign output", path: out.CampaignPath, table: output.CampaignTable(result.Rows), enc: output.UTF16},
		stagedFile{name: "ad customizers", path: out.AdCustomizersPath, table: result.AdCustomizers, enc: output.UTF16},
		stagedFile{name: "page feed", path: out.PageFeedPath, table: result.PageFeed},
	); err != nil {
		return nil, err
	}

	if e.publisher != nil {
		out.CampaignObject = e.CampaignObject()
		if err := e.publisher.Upload(ctx, out.CampaignPath, out.CampaignObject); err != nil {
			return nil, fmt.Errorf("can't publish campaign output: %w", err)
		}
	}

	if e.archiver == nil {
		return out, nil
	}

	items := []output.Item{{Path: out.CampaignPath, Name: e.files.Campaign}}
	if e.files.ImageFolder != "" {
		if _, err := os.Stat(e.files.ImageFolder); err == nil {
			items = append(items, output.Item{Path: e.files.ImageFolder, Name: filepath.Base(e.files.ImageFolder)})
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("can't archive images: %w", err)
		}
	}

	dst := filepath.Join(e.files.Folder, strings.TrimSuffix(e.files.Campaign, filepath.Ext(e.files.Campaign))+".zip")
	archive, err := e.archiver.Archive(ctx, dst, items...)
	if err != nil {
		return nil, fmt.Errorf("can't archive output: %w", err)
	}
	out.Archive = archive

	return out, nil
}

type stagedFile struct {
	name  string
	path  string
	table *models.Table
	enc   encoding.Encoding
}

// writeFiles replaces files only after every one of them is written,
// failed writing keeps previous output untouched.
func writeFiles(files ...stagedFile) error {
	staged := make([]*output.Staged, 0, len(files))
	defer func() {
		for _, s := range staged {
			s.Discard()
		}
	}()

	for _, f := range files {
		s, err := output.StageFile(f.path, f.table, f.enc)
		if err != nil {
			return fmt.Errorf("can't write %s: %w", f.name, err)
		}
		staged = append(staged, s)
	}

	for ix, s := range staged {
		if err := s.Commit(); err != nil {
			return fmt.Errorf("can't write %s: %w", files[ix].name, err)
		}
	}

	return nil
}

// WithArchiver sets Archiver of campaign output and images.
func WithArchiver(archiver Archiver) EmitterOption {
	return func(e *Emitter) {
		e.archiver = archiver
	}
}

// WithPublisher sets Publisher of campaign output.
func WithPublisher(publisher Publisher) EmitterOption {
	return func(e *Emitter) {
		e.publisher = publisher
	}
}
