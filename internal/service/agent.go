package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"feelre/internal/catalog"
	"feelre/internal/config"
	"feelre/internal/model"
)

// AgentService runs one conversational turn: extract, fuse, decide, retrieve,
// rank, compose. Each call is stateless; the fused record travels back to the
// caller as memory.
type AgentService struct {
	cfg       config.AgentConfig
	validator *Validator
	fuser     *Fuser
	policy    *DecisionPolicy
	ranker    *Ranker
	composer  *Composer
	extractor SignalExtractor
	provider  catalog.Provider
	turnLog   catalog.TurnLogger
}

// NewAgentService wires the decision core. The extractor and turn logger may
// be nil; the service degrades gracefully without them.
func NewAgentService(
	cfg config.AgentConfig,
	extractor SignalExtractor,
	provider catalog.Provider,
	turnLog catalog.TurnLogger,
) *AgentService {
	return &AgentService{
		cfg:       cfg,
		validator: NewValidator(cfg.DefaultLocale, cfg.DefaultCurrency),
		fuser:     NewFuser(cfg.DefaultLocale, cfg.DefaultCurrency),
		policy:    NewDecisionPolicy(cfg.DialogPolicy, cfg.MinConfidence),
		ranker:    NewRanker(cfg.ResultCount, cfg.CategoryCap),
		composer:  NewComposer(),
		extractor: extractor,
		provider:  provider,
		turnLog:   turnLog,
	}
}

// Respond handles one turn and returns either a *model.ChatReply or a
// *model.RecommendationsReply. An error means the catalog failed in a way no
// fallback covers; the handler turns it into a generic internal error.
func (s *AgentService) Respond(ctx context.Context, req *model.MessageRequest) (reply interface{}, err error) {
	// Nothing may escape the boundary unhandled; a panic in ranking or
	// composition becomes a generic internal error
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Error: turn panicked: %v", r)
			reply, err = nil, fmt.Errorf("internal error while composing reply")
		}
	}()

	startTime := time.Now()

	known := s.validator.CoerceJSON(req.Known, req.Locale)
	heur := ExtractHeuristics(req.Message)
	semantic := s.extractSemantic(ctx, req.Message, req.Locale)

	fused := s.fuser.Fuse(known, heur, semantic)
	if req.Locale != "" && known == nil && semantic == nil {
		fused.Locale = req.Locale
	}

	if s.policy.Decide(fused) == NeedsClarification {
		reply := s.composer.Clarification(fused)
		s.logTurn(req.Message, fused, reply.Type, nil, startTime)
		return reply, nil
	}

	pool, err := s.provider.Search(ctx, fused, catalog.SearchOptions{Limit: s.cfg.PoolLimit})
	if err != nil {
		return nil, err
	}

	matched := MatchPool(fused, pool, s.cfg.PoolLimit)
	items, diversityTags := s.ranker.Rank(fused, matched)

	if len(items) == 0 {
		reply := s.composer.NarrowDown(fused)
		s.logTurn(req.Message, fused, reply.Type, nil, startTime)
		return reply, nil
	}

	recReply := s.composer.Recommendations(fused, items, diversityTags)
	itemIDs := make([]string, len(items))
	for i, item := range items {
		itemIDs[i] = item.ProductID
	}
	s.logTurn(req.Message, fused, recReply.Type, itemIDs, startTime)
	return recReply, nil
}

// extractSemantic calls the external extractor with a bounded timeout.
// Every failure degrades to a nil contribution, never a hard error.
func (s *AgentService) extractSemantic(ctx context.Context, text, locale string) *model.Signals {
	if s.extractor == nil || !s.extractor.IsEnabled() {
		return nil
	}

	raw, err := s.extractor.ExtractSignals(ctx, text, locale)
	if err != nil {
		log.Printf("Warning: semantic extraction failed, continuing with heuristics: %v", err)
		return nil
	}
	return s.validator.Coerce(raw, locale)
}

// logTurn records the turn without blocking the response
func (s *AgentService) logTurn(message string, signals *model.Signals, replyType string, itemIDs []string, startTime time.Time) {
	if s.turnLog == nil {
		return
	}
	took := int(time.Since(startTime).Milliseconds())
	go func() {
		if err := s.turnLog.LogTurn(context.Background(), message, signals, replyType, itemIDs, took); err != nil {
			log.Printf("Warning: failed to log turn: %v", err)
		}
	}()
}
