package dashboard

import (
	"context"
	"time"
)

// DemandItem is one demanda entry shown on the in-progress card.
type DemandItem struct {
	Protocol string
	Subject  string
	Status   string
	Origin   string
	Updated  time.Time
}

// DemandFeed fetches demandas visible to the current viewer.
type DemandFeed interface {
	InProgress(ctx context.Context, viewer ViewerContext, limit int) ([]DemandItem, error)
}

// NoteItem is one official note entry shown on the recent-notes card.
type NoteItem struct {
	Title       string
	Slug        string
	PublishedAt time.Time
}

// NoteFeed fetches recently published official notes.
type NoteFeed interface {
	Recent(ctx context.Context, viewer ViewerContext, limit int) ([]NoteItem, error)
}

// ActionItem is one pending task shown on the pending-actions card.
type ActionItem struct {
	Label string
	Path  string
	Due   time.Time
}

// ActionFeed fetches tasks awaiting the current viewer.
type ActionFeed interface {
	Pending(ctx context.Context, viewer ViewerContext, limit int) ([]ActionItem, error)
}

// CommunicationItem is one internal communication entry.
type CommunicationItem struct {
	Title  string
	Sender string
	SentAt time.Time
	Read   bool
}

// CommunicationFeed fetches internal communications for the viewer.
type CommunicationFeed interface {
	Latest(ctx context.Context, viewer ViewerContext, limit int) ([]CommunicationItem, error)
}

// StaticDemandFeed returns fixed entries useful for demos/tests.
type StaticDemandFeed struct {
	Items []DemandItem
}

// InProgress returns up to limit items from the static list.
func (f StaticDemandFeed) InProgress(_ context.Context, _ ViewerContext, limit int) ([]DemandItem, error) {
	if limit <= 0 || limit >= len(f.Items) {
		return append([]DemandItem{}, f.Items...), nil
	}
	return append([]DemandItem{}, f.Items[:limit]...), nil
}

// StaticNoteFeed returns fixed entries useful for demos/tests.
type StaticNoteFeed struct {
	Items []NoteItem
}

// Recent returns up to limit items from the static list.
func (f StaticNoteFeed) Recent(_ context.Context, _ ViewerContext, limit int) ([]NoteItem, error) {
	if limit <= 0 || limit >= len(f.Items) {
		return append([]NoteItem{}, f.Items...), nil
	}
	return append([]NoteItem{}, f.Items[:limit]...), nil
}

// StaticActionFeed returns fixed entries useful for demos/tests.
type StaticActionFeed struct {
	Items []ActionItem
}

// Pending returns up to limit items from the static list.
func (f StaticActionFeed) Pending(_ context.Context, _ ViewerContext, limit int) ([]ActionItem, error) {
	if limit <= 0 || limit >= len(f.Items) {
		return append([]ActionItem{}, f.Items...), nil
	}
	return append([]ActionItem{}, f.Items[:limit]...), nil
}

// StaticCommunicationFeed returns fixed entries useful for demos/tests.
type StaticCommunicationFeed struct {
	Items []CommunicationItem
}

// Latest returns up to limit items from the static list.
func (f StaticCommunicationFeed) Latest(_ context.Context, _ ViewerContext, limit int) ([]CommunicationItem, error) {
	if limit <= 0 || limit >= len(f.Items) {
		return append([]CommunicationItem{}, f.Items...), nil
	}
	return append([]CommunicationItem{}, f.Items[:limit]...), nil
}

// DefaultDemandFeed provides placeholder demandas for demos.
func DefaultDemandFeed() DemandFeed {
	now := time.Now()
	return StaticDemandFeed{
		Items: []DemandItem{
			{Protocol: "2026-001482", Subject: "Poda de árvore na Rua das Acácias", Status: "em_andamento", Origin: "portal", Updated: now.Add(-35 * time.Minute)},
			{Protocol: "2026-001477", Subject: "Iluminação pública Praça Central", Status: "em_andamento", Origin: "telefone", Updated: now.Add(-2 * time.Hour)},
			{Protocol: "2026-001461", Subject: "Recolhimento de entulho Vila Nova", Status: "aguardando_setor", Origin: "presencial", Updated: now.Add(-26 * time.Hour)},
		},
	}
}

// DefaultNoteFeed provides placeholder official notes for demos.
func DefaultNoteFeed() NoteFeed {
	now := time.Now()
	return StaticNoteFeed{
		Items: []NoteItem{
			{Title: "Alteração no horário de atendimento", Slug: "alteracao-horario-atendimento", PublishedAt: now.Add(-4 * time.Hour)},
			{Title: "Campanha de vacinação antirrábica", Slug: "campanha-vacinacao-antirrabica", PublishedAt: now.Add(-28 * time.Hour)},
			{Title: "Edital de chamamento público 07/2026", Slug: "edital-chamamento-07-2026", PublishedAt: now.Add(-72 * time.Hour)},
		},
	}
}

// DefaultActionFeed provides placeholder pending tasks for demos.
func DefaultActionFeed() ActionFeed {
	now := time.Now()
	return StaticActionFeed{
		Items: []ActionItem{
			{Label: "Responder solicitação e-SIC 2026-0148", Path: "/esic/2026-0148", Due: now.Add(48 * time.Hour)},
			{Label: "Aprovar nota oficial pendente", Path: "/notas-oficiais/rascunhos", Due: now.Add(24 * time.Hour)},
		},
	}
}

// DefaultCommunicationFeed provides placeholder communications for demos.
func DefaultCommunicationFeed() CommunicationFeed {
	now := time.Now()
	return StaticCommunicationFeed{
		Items: []CommunicationItem{
			{Title: "Reunião de secretariado sexta-feira", Sender: "Gabinete", SentAt: now.Add(-90 * time.Minute), Read: false},
			{Title: "Novo fluxo de protocolo digital", Sender: "Secretaria de Administração", SentAt: now.Add(-20 * time.Hour), Read: true},
		},
	}
}
