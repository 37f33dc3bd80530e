package rest

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const (
	resumeField   = "resume"
	maxFieldBytes = 64 << 10
)

// maxFormBytes bounds the whole request: the resume plus the text fields.
const maxFormBytes = services.MaxResumeSize + 1<<20

// Upload rejections are built per call so that no two requests share the
// same Fields map.
func errNotPDF() *common.Error {
	return common.NewError(common.ErrorInvalidInput, "Only PDF files are allowed")
}

func errResumeTooBig() *common.Error {
	return common.NewError(common.ErrorInvalidInput, "Resume exceeds the 5 MB limit").With("limit_bytes", services.MaxResumeSize)
}

func errFormTooBig() *common.Error {
	return common.NewError(common.ErrorInvalidInput, "Request body too large").With("limit_bytes", maxFormBytes)
}

func errBadForm() *common.Error {
	return common.NewError(common.ErrorInvalidInput, "Invalid multipart form")
}

func errDoubleResume() *common.Error {
	return common.NewError(common.ErrorInvalidInput, "Only one resume file is allowed")
}

func errFieldTooLarge() *common.Error {
	return common.NewError(common.ErrorInvalidInput, "Form field too large").With("limit_bytes", maxFieldBytes)
}

// parseApplicationForm streams a multipart application form. The resume part
// is checked as it arrives: a declared type other than application/pdf stops
// parsing before the file body is read, and the file is never buffered beyond
// services.MaxResumeSize+1 bytes.
func parseApplicationForm(c *gin.Context) (*services.Submission, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormBytes)

	mr, err := c.Request.MultipartReader()
	if err != nil {
		return nil, errBadForm()
	}

	sub := &services.Submission{}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return sub, nil
		}
		if err != nil {
			return nil, formError(err)
		}

		name := part.FormName()
		switch {
		case name == resumeField:
			if part.FileName() == "" {
				continue
			}
			if sub.Resume != nil {
				return nil, errDoubleResume()
			}
			if !declaredPDF(part.Header.Get("Content-Type")) {
				return nil, errNotPDF()
			}
			if sub.Resume, err = readResume(part); err != nil {
				return nil, err
			}
		case part.FileName() != "":
			// unknown file fields are skipped; NextPart discards the rest
		default:
			value, err := readField(part)
			if err != nil {
				return nil, err
			}
			setField(sub, name, value)
		}
	}
}

func declaredPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == services.ResumeContentType
}

func readResume(r io.Reader) (*services.Resume, error) {
	data, err := io.ReadAll(io.LimitReader(r, services.MaxResumeSize+1))
	if err != nil {
		return nil, formError(err)
	}
	if len(data) > services.MaxResumeSize {
		return nil, errResumeTooBig()
	}
	if !mimetype.Detect(data).Is(services.ResumeContentType) {
		return nil, errNotPDF()
	}
	return &services.Resume{Body: bytes.NewReader(data), Size: int64(len(data))}, nil
}

func readField(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFieldBytes+1))
	if err != nil {
		return "", formError(err)
	}
	if len(data) > maxFieldBytes {
		return "", errFieldTooLarge()
	}
	return string(data), nil
}

func formError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return errFormTooBig()
	}
	return errBadForm().Wrap(err)
}

func setField(sub *services.Submission, name, value string) {
	f := &sub.Fields
	switch name {
	case "jobId":
		sub.JobID = value
	case "name":
		f.Name = value
	case "email":
		f.Email = value
	case "phone":
		f.Phone = value
	case "expected_salary":
		f.ExpectedSalary = value
	case "cover_letter":
		f.CoverLetter = value
	case "location":
		f.Location = value
	case "city":
		f.City = value
	case "education":
		f.Education = value
	case "position_applying":
		f.PositionApplying = value
	}
}
