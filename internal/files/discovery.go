package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"likecli/internal/dataprocessing"
	"likecli/internal/errors"
	"likecli/internal/validation"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// InputSet holds the export files of one run. The first three are mandatory.
type InputSet struct {
	Large          string `validate:"required" label:"Large Table"`
	Metacognition  string `validate:"required" label:"Metacognition Progress"`
	SelfAssessment string `validate:"required" label:"Self-Assessment"`
	Objectives     string
}

var inputValidator = newInputValidator()

// newInputValidator reports fields by their label tag
func newInputValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("label")
	})
	return v
}

// Validate returns a MISSING_INPUT error naming the first absent mandatory export
func (s InputSet) Validate() error {
	err := inputValidator.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.NewAppValidationError(err.Error())
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return errors.NewMissingInputError(missing[0]).WithContext("missing", missing)
}

// Path returns the file assigned to a schema, or "" if none
func (s InputSet) Path(schema dataprocessing.SchemaType) string {
	switch schema {
	case dataprocessing.SchemaLargeTable:
		return s.Large
	case dataprocessing.SchemaMetacognitionProgress:
		return s.Metacognition
	case dataprocessing.SchemaSelfAssessment:
		return s.SelfAssessment
	case dataprocessing.SchemaDifficultObjectives:
		return s.Objectives
	}
	return ""
}

func (s *InputSet) assign(schema dataprocessing.SchemaType, path string) bool {
	var slot *string
	switch schema {
	case dataprocessing.SchemaLargeTable:
		slot = &s.Large
	case dataprocessing.SchemaMetacognitionProgress:
		slot = &s.Metacognition
	case dataprocessing.SchemaSelfAssessment:
		slot = &s.SelfAssessment
	case dataprocessing.SchemaDifficultObjectives:
		slot = &s.Objectives
	default:
		return false
	}
	if *slot != "" {
		return false
	}
	*slot = path
	return true
}

// Classified is a file together with the export type its header matched
type Classified struct {
	File      FileInfo
	Detection dataprocessing.Detection
}

// ScanResult is the outcome of classifying every CSV in a directory
type ScanResult struct {
	Dir       string
	Inputs    InputSet
	Unknown   []Classified
	Conflicts []Classified
}

// Discovery finds and classifies export files
type Discovery struct {
	logger    *slog.Logger
	reader    *dataprocessing.TableReader
	validator *validation.FileValidator
}

// NewDiscovery creates a discovery that reads headers with reader
func NewDiscovery(logger *slog.Logger, reader *dataprocessing.TableReader) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	if reader == nil {
		reader = dataprocessing.NewTableReader(logger, dataprocessing.DefaultDelimiter)
	}
	return &Discovery{
		logger:    logger.With(slog.String("component", "discovery")),
		reader:    reader,
		validator: validation.NewFileValidator(logger),
	}
}

// FindCSVFiles lists the candidate export files in dir, sorted by name
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	if err := d.validator.ValidateInputDirectory(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read directory %s", dir), err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !validation.IsCandidateCSV(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// ListDirectories lists the subdirectories of dir, sorted by name
func (d *Discovery) ListDirectories(dir string) ([]FileInfo, error) {
	if err := d.validator.ValidateInputDirectory(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read directory %s", dir), err)
	}

	var dirs []FileInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		dirs = append(dirs, FileInfo{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			ModTime: info.ModTime(),
			IsDir:   true,
		})
	}

	sort.Slice(dirs, func(i, j int) bool {
		return dirs[i].Name < dirs[j].Name
	})
	return dirs, nil
}

// Scan classifies every CSV file in dir by its header. The first file (by
// name) of each type fills the slot; later files of the same type are
// reported as conflicts and files matching no type as unknown. Scan does not
// check that the mandatory inputs were found; call Inputs.Validate for that.
func (d *Discovery) Scan(dir string) (*ScanResult, error) {
	files, err := d.FindCSVFiles(dir)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Dir: dir}
	for _, f := range files {
		detection, err := d.reader.DetectFile(f.Path)
		if err != nil {
			d.logger.Warn("Skipping unreadable file",
				slog.String("file", f.Path),
				slog.String("error", err.Error()))
			result.Unknown = append(result.Unknown, Classified{
				File:      f,
				Detection: dataprocessing.Detection{Type: dataprocessing.SchemaUnknown, Reason: err.Error()},
			})
			continue
		}

		c := Classified{File: f, Detection: detection}
		switch {
		case !detection.Known():
			d.logger.Warn("Unknown file type",
				slog.String("file", f.Path),
				slog.String("reason", detection.Reason))
			result.Unknown = append(result.Unknown, c)
		case !result.Inputs.assign(detection.Type, f.Path):
			d.logger.Warn("Duplicate export ignored",
				slog.String("file", f.Path),
				slog.String("type", string(detection.Type)),
				slog.String("kept", result.Inputs.Path(detection.Type)))
			result.Conflicts = append(result.Conflicts, c)
		default:
			d.logger.Info("Export detected",
				slog.String("file", f.Path),
				slog.String("type", string(detection.Type)))
		}
	}
	return result, nil
}

// Verify checks explicitly supplied files: each must be an existing .csv file and its header
// must match the slot it was given for.
func (d *Discovery) Verify(set InputSet) error {
	for _, schema := range []dataprocessing.SchemaType{
		dataprocessing.SchemaLargeTable,
		dataprocessing.SchemaMetacognitionProgress,
		dataprocessing.SchemaSelfAssessment,
		dataprocessing.SchemaDifficultObjectives,
	} {
		path := set.Path(schema)
		if path == "" {
			continue
		}
		if err := d.validator.ValidateCSVFile(path); err != nil {
			return err
		}
		detection, err := d.reader.DetectFile(path)
		if err != nil {
			return err
		}
		if detection.Type != schema {
			d.logger.Error("Export does not match its expected type",
				slog.String("file", path),
				slog.String("expected", string(schema)),
				slog.String("detected", string(detection.Type)))
			if !detection.Known() {
				return errors.NewSchemaMismatchError(path, detection.Offered).
					WithContext("expected", string(schema))
			}
			return errors.NewAppError(errors.ErrTypeSchemaMismatch,
				fmt.Sprintf("%s is a %s export, expected %s", path, detection.Type, schema), nil).
				WithContext("source", path).
				WithContext("expected", string(schema)).
				WithContext("detected", string(detection.Type))
		}
	}
	return nil
}
