package dashboard

import "context"

// NavigationProvider handles cards that only link somewhere: standard,
// search and selection variants carry no server data beyond their own
// metadata.
func NavigationProvider() Provider {
	return ProviderFunc(func(ctx context.Context, meta CardContext) (CardData, error) {
		title := translateOrFallback(ctx, meta.Translator, "painel.card."+string(meta.Card.Type)+".title", meta.Viewer.Locale, meta.Card.Title, nil)
		return CardData{
			"title": title,
			"path":  meta.Card.Path,
			"icon":  IconGlyph(meta.Card.IconID),
		}, nil
	})
}

func defaultProviders() map[CardType]Provider {
	return map[CardType]Provider{
		CardInProgressDemands: NewInProgressDemandsProvider(nil),
		CardRecentNotes:       NewRecentNotesProvider(nil),
		CardPendingActions:    NewPendingActionsProvider(nil),
		CardCommunications:    NewCommunicationsProvider(nil),
		CardOriginDemandChart: NewOriginDemandChartProvider(NewStaticOriginRepository(defaultOriginBreakdown()), NewEChartsProvider("bar")),
	}
}

// NewInProgressDemandsProvider builds the in-progress demandas card from the
// given feed. A nil feed falls back to the bundled demo data.
func NewInProgressDemandsProvider(feed DemandFeed) Provider {
	return ProviderFunc(func(ctx context.Context, meta CardContext) (CardData, error) {
		if feed == nil {
			feed = DefaultDemandFeed()
		}
		items, err := feed.InProgress(ctx, meta.Viewer, cardLimit(meta.Card, 5))
		if err != nil {
			return nil, err
		}
		payload := make([]map[string]any, 0, len(items))
		for _, item := range items {
			payload = append(payload, map[string]any{
				"protocol": item.Protocol,
				"subject":  item.Subject,
				"status":   item.Status,
				"origin":   item.Origin,
				"updated":  item.Updated,
			})
		}
		return CardData{"items": payload}, nil
	})
}

// NewRecentNotesProvider builds the recent official notes card from the given
// feed.
func NewRecentNotesProvider(feed NoteFeed) Provider {
	return ProviderFunc(func(ctx context.Context, meta CardContext) (CardData, error) {
		if feed == nil {
			feed = DefaultNoteFeed()
		}
		items, err := feed.Recent(ctx, meta.Viewer, cardLimit(meta.Card, 5))
		if err != nil {
			return nil, err
		}
		payload := make([]map[string]any, 0, len(items))
		for _, item := range items {
			payload = append(payload, map[string]any{
				"title":       item.Title,
				"slug":        item.Slug,
				"publishedAt": item.PublishedAt,
			})
		}
		return CardData{"items": payload}, nil
	})
}

// NewPendingActionsProvider builds the pending actions card from the given
// feed.
func NewPendingActionsProvider(feed ActionFeed) Provider {
	return ProviderFunc(func(ctx context.Context, meta CardContext) (CardData, error) {
		if feed == nil {
			feed = DefaultActionFeed()
		}
		items, err := feed.Pending(ctx, meta.Viewer, cardLimit(meta.Card, 10))
		if err != nil {
			return nil, err
		}
		payload := make([]map[string]any, 0, len(items))
		for _, item := range items {
			payload = append(payload, map[string]any{
				"label": item.Label,
				"path":  item.Path,
				"due":   item.Due,
			})
		}
		return CardData{"items": payload, "count": len(items)}, nil
	})
}

// NewCommunicationsProvider builds the communications card from the given
// feed.
func NewCommunicationsProvider(feed CommunicationFeed) Provider {
	return ProviderFunc(func(ctx context.Context, meta CardContext) (CardData, error) {
		if feed == nil {
			feed = DefaultCommunicationFeed()
		}
		items, err := feed.Latest(ctx, meta.Viewer, cardLimit(meta.Card, 5))
		if err != nil {
			return nil, err
		}
		payload := make([]map[string]any, 0, len(items))
		unread := 0
		for _, item := range items {
			if !item.Read {
				unread++
			}
			payload = append(payload, map[string]any{
				"title":  item.Title,
				"sender": item.Sender,
				"sentAt": item.SentAt,
				"read":   item.Read,
			})
		}
		return CardData{"items": payload, "unread": unread}, nil
	})
}

func cardLimit(card Card, fallback int) int {
	if v, ok := card.Options["limit"].(int); ok && v > 0 {
		return v
	}
	if v, ok := card.Options["limit"].(float64); ok && v > 0 {
		return int(v)
	}
	return fallback
}
