package document

import (
	"github.com/closetrackhq/closetrack/internal/document"
)

type documentResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Status document.Status `json:"status"`
}

type documentListResponse struct {
	Documents []documentResponse `json:"documents"`
	Progress  int                `json:"progress"`
}

func toResponse(d *document.Document) documentResponse {
	return documentResponse{ID: d.ID, Name: d.Name, Status: d.Status}
}

func toListResponse(docs []*document.Document) documentListResponse {
	resp := documentListResponse{
		Documents: make([]documentResponse, len(docs)),
		Progress:  document.Progress(docs),
	}

	for i, d := range docs {
		resp.Documents[i] = toResponse(d)
	}

	return resp
}
