// Package chat routes conversational input to the question answering
// and document management services.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driving"
)

// Reply is the router's response to one input.
type Reply struct {
	// Text is shown to the user.
	Text string

	// Sources are set when the reply is a grounded answer.
	Sources []domain.RetrievedChunk

	// Quit signals that the session should end.
	Quit bool
}

const welcomeText = `Hi! I answer questions about your documents.

Type a question, or use a command:
  /list          show ingested documents
  /delete <id>   remove a document
  /help          show this message
  /quit          end the session`

// Router interprets slash commands and questions typed in a chat session.
type Router struct {
	answer    driving.AnswerService
	ingest    driving.IngestService
	documents driving.DocumentService
}

// NewRouter creates a chat router.
func NewRouter(answer driving.AnswerService, ingest driving.IngestService, documents driving.DocumentService) *Router {
	return &Router{
		answer:    answer,
		ingest:    ingest,
		documents: documents,
	}
}

// Handle processes one line of input. Lines starting with "/" are
// commands, everything else is a question.
func (r *Router) Handle(ctx context.Context, input string) Reply {
	input = strings.TrimSpace(input)
	if input == "" {
		return Reply{}
	}

	if strings.HasPrefix(input, "/") {
		return r.handleCommand(ctx, input)
	}
	return r.handleQuestion(ctx, input)
}

// HandleUpload ingests a document provided by the user mid-session.
func (r *Router) HandleUpload(ctx context.Context, content []byte, filename string) Reply {
	if r.ingest == nil {
		return Reply{Text: "Document ingestion is not available in this session."}
	}

	doc, err := r.ingest.Ingest(ctx, content, filename)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return Reply{Text: fmt.Sprintf("%s is already in the library.", filename)}
		}
		if errors.Is(err, domain.ErrUnsupportedType) {
			return Reply{Text: fmt.Sprintf("Sorry, I can't read %s. Try PDF, plain text or Markdown.", filename)}
		}
		return Reply{Text: fmt.Sprintf("Failed to ingest %s: %v", filename, err)}
	}

	return Reply{Text: fmt.Sprintf("Added %s to the library (%d chunks). Ask me anything about it!",
		doc.Title, doc.ChunkCount)}
}

func (r *Router) handleCommand(ctx context.Context, input string) Reply {
	fields := strings.Fields(input)
	command := fields[0]
	args := fields[1:]

	switch command {
	case "/start", "/help":
		return Reply{Text: welcomeText}

	case "/list":
		return r.listDocuments(ctx)

	case "/delete":
		if len(args) != 1 {
			return Reply{Text: "Usage: /delete <document-id>"}
		}
		return r.deleteDocument(ctx, args[0])

	case "/quit", "/exit":
		return Reply{Text: "Bye!", Quit: true}

	default:
		return Reply{Text: fmt.Sprintf("Unknown command %s. Type /help for a list.", command)}
	}
}

func (r *Router) handleQuestion(ctx context.Context, question string) Reply {
	if r.answer == nil {
		return Reply{Text: "Question answering is not available in this session."}
	}

	answer, err := r.answer.Answer(ctx, question)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			return Reply{Text: "The AI provider is rate limiting requests. Try again in a moment."}
		}
		return Reply{Text: fmt.Sprintf("Sorry, something went wrong: %v", err)}
	}

	return Reply{Text: answer.Text, Sources: answer.Sources}
}

func (r *Router) listDocuments(ctx context.Context) Reply {
	if r.documents == nil {
		return Reply{Text: "Document listing is not available in this session."}
	}

	docs, err := r.documents.List(ctx)
	if err != nil {
		return Reply{Text: fmt.Sprintf("Failed to list documents: %v", err)}
	}

	if len(docs) == 0 {
		return Reply{Text: "No documents yet. Ingest one with 'docubot ingest <file>'."}
	}

	var b strings.Builder
	b.WriteString("Your documents:\n")
	for i := range docs {
		fmt.Fprintf(&b, "  %s  %s (%s, %d chunks)\n",
			docs[i].ID, docs[i].Title, docs[i].Status, docs[i].ChunkCount)
	}
	return Reply{Text: strings.TrimRight(b.String(), "\n")}
}

func (r *Router) deleteDocument(ctx context.Context, id string) Reply {
	if r.ingest == nil {
		return Reply{Text: "Document removal is not available in this session."}
	}

	if err := r.ingest.Remove(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Reply{Text: fmt.Sprintf("No document with ID %s.", id)}
		}
		return Reply{Text: fmt.Sprintf("Failed to delete %s: %v", id, err)}
	}
	return Reply{Text: fmt.Sprintf("Deleted %s.", id)}
}
