package httpapi

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
	"github.com/goliatone/go-painel/components/dashboard/commands"
	"github.com/goliatone/go-painel/components/dashboard/queries"
)

// Executor is the transport-facing surface: every layout operation routers
// need, expressed over command/query inputs.
type Executor interface {
	SetEditMode(ctx context.Context, msg commands.SetEditModeInput) error
	AddCard(ctx context.Context, msg commands.AddCardInput) error
	RemoveCard(ctx context.Context, msg commands.RemoveCardInput) error
	HideCard(ctx context.Context, msg commands.HideCardInput) error
	MoveCard(ctx context.Context, msg commands.MoveCardInput) error
	UpdateCard(ctx context.Context, msg commands.UpdateCardInput) error
	SaveLayout(ctx context.Context, msg commands.SaveLayoutInput) error
	ResetLayout(ctx context.Context, msg commands.ResetLayoutInput) error
	Layout(ctx context.Context, viewer dashboard.ViewerContext) (queries.LayoutResult, error)
	Export(ctx context.Context, viewer dashboard.ViewerContext) ([]byte, error)
	Import(ctx context.Context, msg queries.ImportInput) (queries.ImportResult, error)
}

// CommandExecutor wires the shared commands and queries behind the Executor
// interface.
type CommandExecutor struct {
	EditMode gocommand.Commander[commands.SetEditModeInput]
	Add      gocommand.Commander[commands.AddCardInput]
	Remove   gocommand.Commander[commands.RemoveCardInput]
	Hide     gocommand.Commander[commands.HideCardInput]
	Move     gocommand.Commander[commands.MoveCardInput]
	Update   gocommand.Commander[commands.UpdateCardInput]
	Save     gocommand.Commander[commands.SaveLayoutInput]
	Reset    gocommand.Commander[commands.ResetLayoutInput]
	Resolve  gocommand.Querier[dashboard.ViewerContext, queries.LayoutResult]
	Exporter gocommand.Querier[dashboard.ViewerContext, []byte]
	Importer gocommand.Querier[queries.ImportInput, queries.ImportResult]
}

// NewCommandExecutor builds the default executor for a service.
func NewCommandExecutor(service *dashboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		EditMode: commands.NewSetEditModeCommand(service, telemetry),
		Add:      commands.NewAddCardCommand(service, telemetry),
		Remove:   commands.NewRemoveCardCommand(service, telemetry),
		Hide:     commands.NewHideCardCommand(service, telemetry),
		Move:     commands.NewMoveCardCommand(service, telemetry),
		Update:   commands.NewUpdateCardCommand(service, telemetry),
		Save:     commands.NewSaveLayoutCommand(service, telemetry),
		Reset:    commands.NewResetLayoutCommand(service, telemetry),
		Resolve:  queries.NewLayoutQuery(service),
		Exporter: queries.NewExportQuery(service),
		Importer: queries.NewImportQuery(service),
	}
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) SetEditMode(ctx context.Context, msg commands.SetEditModeInput) error {
	return e.EditMode.Execute(ctx, msg)
}

func (e *CommandExecutor) AddCard(ctx context.Context, msg commands.AddCardInput) error {
	return e.Add.Execute(ctx, msg)
}

func (e *CommandExecutor) RemoveCard(ctx context.Context, msg commands.RemoveCardInput) error {
	return e.Remove.Execute(ctx, msg)
}

func (e *CommandExecutor) HideCard(ctx context.Context, msg commands.HideCardInput) error {
	return e.Hide.Execute(ctx, msg)
}

func (e *CommandExecutor) MoveCard(ctx context.Context, msg commands.MoveCardInput) error {
	return e.Move.Execute(ctx, msg)
}

func (e *CommandExecutor) UpdateCard(ctx context.Context, msg commands.UpdateCardInput) error {
	return e.Update.Execute(ctx, msg)
}

func (e *CommandExecutor) SaveLayout(ctx context.Context, msg commands.SaveLayoutInput) error {
	return e.Save.Execute(ctx, msg)
}

func (e *CommandExecutor) ResetLayout(ctx context.Context, msg commands.ResetLayoutInput) error {
	return e.Reset.Execute(ctx, msg)
}

func (e *CommandExecutor) Layout(ctx context.Context, viewer dashboard.ViewerContext) (queries.LayoutResult, error) {
	return e.Resolve.Query(ctx, viewer)
}

func (e *CommandExecutor) Export(ctx context.Context, viewer dashboard.ViewerContext) ([]byte, error) {
	return e.Exporter.Query(ctx, viewer)
}

func (e *CommandExecutor) Import(ctx context.Context, msg queries.ImportInput) (queries.ImportResult, error) {
	return e.Importer.Query(ctx, msg)
}
