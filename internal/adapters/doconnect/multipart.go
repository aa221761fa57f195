package doconnect

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/doconnect/doconnect-web/internal/domain/model"
)

// submissionForm packages a question or answer draft the way the upstream
// expects it: text fields plus repeated "Files" parts carrying attachments.
type submissionForm struct {
	Fields map[string]string
	Files  []model.Upload
}

// encode builds the multipart body and returns it with its content type.
func (f submissionForm) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range f.Fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	for _, file := range f.Files {
		part, err := createFilePart(w, file)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("write file %s: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// createFilePart writes the part header for an upload, preserving the
// original content type when one was supplied.
func createFilePart(w *multipart.Writer, file model.Upload) (partWriter, error) {
	if file.ContentType == "" {
		part, err := w.CreateFormFile("Files", file.Name)
		if err != nil {
			return nil, fmt.Errorf("create file part %s: %w", file.Name, err)
		}
		return part, nil
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="Files"; filename="%s"`, escapeQuotes(file.Name)))
	h.Set("Content-Type", file.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create file part %s: %w", file.Name, err)
	}
	return part, nil
}

type partWriter interface {
	Write(p []byte) (int, error)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// questionForm builds the multipart form for a question draft.
func questionForm(draft model.QuestionDraft) submissionForm {
	return submissionForm{
		Fields: map[string]string{"Title": draft.Title, "Text": draft.Text},
		Files:  draft.Files,
	}
}

// answerForm builds the multipart form for an answer draft.
func answerForm(draft model.AnswerDraft) submissionForm {
	return submissionForm{
		Fields: map[string]string{"Text": draft.Text},
		Files:  draft.Files,
	}
}
