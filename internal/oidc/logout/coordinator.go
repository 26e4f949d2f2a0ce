/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package logout

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	appservice "github.com/asgardeo/oidclogout/internal/application/service"
	"github.com/asgardeo/oidclogout/internal/oidc/session"
	"github.com/asgardeo/oidclogout/internal/system/config"
	"github.com/asgardeo/oidclogout/internal/system/log"
	"github.com/asgardeo/oidclogout/internal/system/metrics"
	"github.com/asgardeo/oidclogout/internal/system/tracing"
	"github.com/asgardeo/oidclogout/internal/system/utils"
)

const (
	tracerName = "logout"

	reasonLoggedOut        = "logged_out"
	reasonConsentRequired  = "consent_required"
	reasonFlowIncomplete   = "flow_incomplete"
	reasonLogoutPage       = "logout_page"
	reasonAlreadyLoggedOut = "already_logged_out"
)

// LogoutCoordinatorInterface turns a logout request into a single logout decision.
type LogoutCoordinatorInterface interface {
	Handle(ctx context.Context, req LogoutRequestContext) LogoutDecision
}

// LogoutCoordinator is the default implementation of LogoutCoordinatorInterface.
type LogoutCoordinator struct {
	sessionStates     session.SessionStateStoreInterface
	pendingRequests   session.SessionStateStoreInterface
	appService        appservice.ApplicationServiceInterface
	verifier          IDTokenHintVerifierInterface
	resolver          *RedirectURIResolver
	orchestrator      *ConsentOrchestrator
	settings          config.LogoutConfig
	newSessionDataKey func() string
}

// NewLogoutCoordinator creates a logout coordinator.
func NewLogoutCoordinator(sessionStates, pendingRequests session.SessionStateStoreInterface,
	appService appservice.ApplicationServiceInterface, verifier IDTokenHintVerifierInterface,
	settings config.LogoutConfig) *LogoutCoordinator {
	defaultRedirectURL := settings.DefaultRedirectURL
	if defaultRedirectURL == "" {
		defaultRedirectURL = settings.LogoutPageURL
	}
	return &LogoutCoordinator{
		sessionStates:     sessionStates,
		pendingRequests:   pendingRequests,
		appService:        appService,
		verifier:          verifier,
		resolver:          NewRedirectURIResolver(defaultRedirectURL),
		orchestrator:      NewConsentOrchestrator(),
		settings:          settings,
		newSessionDataKey: utils.GenerateUUID,
	}
}

// Handle processes the logout request and returns its decision. It never returns an empty
// decision.
func (c *LogoutCoordinator) Handle(ctx context.Context, req LogoutRequestContext) LogoutDecision {
	start := time.Now()
	defer metrics.ObserveDuration(start)

	ctx, span := tracing.StartSpan(ctx, tracerName, "LogoutCoordinator.Handle",
		attribute.String("logout.flow_status", string(req.FlowStatus)),
		attribute.Bool("logout.session_cookie", req.HasSessionCookie()),
		attribute.Bool("logout.id_token_hint", req.IDTokenHint != ""))
	defer span.End()

	decision := c.handle(ctx, req)

	span.SetAttributes(attribute.String("logout.decision", string(decision.Type)),
		attribute.String("logout.reason", decision.Reason))
	if decision.IsError() {
		tracing.RecordError(span, errors.New(decision.ErrorMessage))
	}
	metrics.ObserveDecision(string(decision.Type), decision.Reason)
	return decision
}

func (c *LogoutCoordinator) handle(ctx context.Context, req LogoutRequestContext) LogoutDecision {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LogoutCoordinator"))

	var entry session.SessionCacheEntry
	exists := false
	if req.HasSessionCookie() {
		var err error
		entry, exists, err = c.sessionStates.Lookup(ctx, req.SessionState)
		if err != nil {
			logger.Error("Error occurred while looking up the session state",
				log.String(log.LoggerKeySessionState, log.MaskString(req.SessionState)), log.Error(err))
			return c.errorDecision(newLogoutError(ErrorKindSessionStoreFailure, err))
		}
	}

	state := c.orchestrator.Evaluate(ConsentInput{
		HasSessionCookie:  req.HasSessionCookie(),
		SessionExists:     exists,
		Consent:           req.Consent,
		FlowStatus:        req.FlowStatus,
		HasSessionDataKey: req.SessionDataKey != "",
		SkipConsent:       exists && c.skipConsent(ctx, entry.ClientID()),
	})
	if logger.IsDebugEnabled() {
		logger.Debug("Evaluated logout consent state", log.String("state", string(state)),
			log.String(log.LoggerKeyClientID, entry.ClientID()))
	}

	switch state {
	case ConsentStateNoActiveSession:
		return c.handleMissingSession(ctx, req, ErrorKindMissingSessionCookie)
	case ConsentStateSessionNotFound:
		return c.handleMissingSession(ctx, req, ErrorKindSessionNotFound)
	case ConsentStateDenied:
		c.discardPendingRequest(ctx, req.SessionDataKey)
		return c.errorDecision(newLogoutError(ErrorKindConsentDenied, nil))
	case ConsentStateFlowIncomplete:
		return c.redirectDecision(c.settings.RetryPageURL, reasonFlowIncomplete, false)
	case ConsentStateRequired:
		return c.requestConsent(ctx, req)
	case ConsentStateGiven:
		return c.proceed(ctx, c.restorePendingRequest(ctx, req), entry)
	case ConsentStateResumed:
		restored, lerr := c.resumePendingRequest(ctx, req)
		if lerr != nil {
			return c.errorDecision(lerr)
		}
		return c.proceed(ctx, restored, entry)
	default:
		return c.proceed(ctx, req, entry)
	}
}

// skipConsent reports whether consent is skipped server wide or for the client of the
// session. A failed application lookup does not skip consent.
func (c *LogoutCoordinator) skipConsent(ctx context.Context, clientID string) bool {
	if c.settings.SkipUserConsent {
		return true
	}
	if clientID == "" {
		return false
	}
	app, svcErr := c.appService.GetApplicationByClientID(ctx, clientID)
	if svcErr != nil || app == nil {
		return false
	}
	return app.SkipLogoutConsent
}

// handleMissingSession handles requests without a live browser session. Unless the server
// handles such requests gracefully they end in an error.
func (c *LogoutCoordinator) handleMissingSession(ctx context.Context, req LogoutRequestContext,
	kind ErrorKind) LogoutDecision {
	if !c.settings.HandleMissingSessionGracefully {
		return c.errorDecision(newLogoutError(kind, nil))
	}
	if req.FlowStatus == FlowStatusIncomplete {
		return c.redirectDecision(c.settings.RetryPageURL, reasonFlowIncomplete, false)
	}
	if req.IDTokenHint == "" {
		return c.redirectDecision(c.settings.LogoutPageURL, reasonLogoutPage, req.HasSessionCookie())
	}

	redirectURI, _, lerr := c.validateRequest(ctx, req, "", "")
	if lerr != nil {
		return c.errorDecision(lerr)
	}
	return c.redirectDecision(withState(redirectURI, req.State), reasonAlreadyLoggedOut,
		req.HasSessionCookie())
}

// proceed verifies the hint, resolves the redirect URI and terminates the session.
func (c *LogoutCoordinator) proceed(ctx context.Context, req LogoutRequestContext,
	entry session.SessionCacheEntry) LogoutDecision {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LogoutCoordinator"))

	redirectURI, clientID, lerr := c.validateRequest(ctx, req, entry.ClientID(), entry.TenantDomain())
	if lerr != nil {
		return c.errorDecision(lerr)
	}

	existed, err := c.sessionStates.Invalidate(ctx, req.SessionState)
	if err != nil {
		logger.Error("Error occurred while terminating the session",
			log.String(log.LoggerKeySessionState, log.MaskString(req.SessionState)), log.Error(err))
		return c.errorDecision(newLogoutError(ErrorKindLogoutFinalizationFailed, err))
	}
	c.discardPendingRequest(ctx, req.SessionDataKey)

	if !existed {
		// A concurrent request terminated the session first.
		logger.Debug("Session state was already invalidated",
			log.String(log.LoggerKeySessionState, log.MaskString(req.SessionState)))
		if !c.settings.HandleMissingSessionGracefully {
			return c.errorDecision(newLogoutError(ErrorKindSessionNotFound, nil))
		}
		return c.redirectDecision(withState(redirectURI, req.State), reasonAlreadyLoggedOut, true)
	}

	logger.Debug("Session terminated", log.String(log.LoggerKeyClientID, clientID))
	return c.redirectDecision(withState(redirectURI, req.State), reasonLoggedOut, true)
}

// validateRequest validates the post logout redirect URI against the client the hint was
// issued to, or the client of the session when the hint can not be decoded, and then
// verifies the hint. When a hint is sent the redirect URI is only accepted if the hint verifies.
func (c *LogoutCoordinator) validateRequest(ctx context.Context, req LogoutRequestContext,
	sessionClientID, sessionTenant string) (string, string, *LogoutError) {
	clientID := sessionClientID
	var hintErr *LogoutError
	if req.IDTokenHint != "" {
		if hintClientID, lerr := c.verifier.PeekClientID(req.IDTokenHint); lerr != nil {
			hintErr = lerr
		} else {
			clientID = hintClientID
		}
	}

	redirectURI, lerr := c.resolveRedirectURI(ctx, req.PostLogoutRedirectURI, clientID)
	if lerr != nil {
		return "", "", lerr
	}
	if hintErr != nil {
		return "", "", hintErr
	}

	if req.IDTokenHint != "" {
		token, lerr := c.verifier.Verify(ctx, req.IDTokenHint, sessionTenant)
		if lerr != nil {
			return "", "", lerr
		}
		clientID = token.ClientID
	}
	return redirectURI, clientID, nil
}

// resolveRedirectURI validates the post logout redirect URI against the callbacks of the
// client. Without a client a supplied URI can not be validated.
func (c *LogoutCoordinator) resolveRedirectURI(ctx context.Context, candidate, clientID string) (
	string, *LogoutError) {
	if candidate == "" {
		return c.resolver.Resolve("", nil)
	}
	if clientID == "" {
		return "", newLogoutError(ErrorKindPostLogoutURIMismatch, nil)
	}
	app, svcErr := c.appService.GetApplicationByClientID(ctx, clientID)
	if svcErr != nil || app == nil {
		return "", newLogoutError(ErrorKindClientNotFound, nil)
	}
	return c.resolver.Resolve(candidate, app.CallbackURLs)
}

// requestConsent parks the request under a fresh session data key and sends the user agent
// to the consent page.
func (c *LogoutCoordinator) requestConsent(ctx context.Context, req LogoutRequestContext) LogoutDecision {
	sessionDataKey := c.newSessionDataKey()
	pending := session.NewSessionCacheEntry(map[string]string{
		pendingParamIDTokenHint:           req.IDTokenHint,
		pendingParamPostLogoutRedirectURI: req.PostLogoutRedirectURI,
		pendingParamState:                 req.State,
		pendingParamSessionState:          req.SessionState,
	})
	if err := c.pendingRequests.Add(ctx, sessionDataKey, pending); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LogoutCoordinator")).
			Error("Error occurred while storing the pending logout request", log.Error(err))
		return c.errorDecision(newLogoutError(ErrorKindSessionStoreFailure, err))
	}

	location := utils.AppendQueryParam(c.settings.ConsentPageURL, RequestParamSessionDataKey, sessionDataKey)
	return c.redirectDecision(location, reasonConsentRequired, false)
}

// restorePendingRequest fills the parameters missing from the request from the request
// parked under its session data key. A parked request of another browser session is ignored.
func (c *LogoutCoordinator) restorePendingRequest(ctx context.Context,
	req LogoutRequestContext) LogoutRequestContext {
	if req.SessionDataKey == "" {
		return req
	}
	pending, found, err := c.pendingRequests.Lookup(ctx, req.SessionDataKey)
	if err != nil || !found {
		return req
	}
	restored, ok := mergePendingRequest(req, pending)
	if !ok {
		return req
	}
	return restored
}

// resumePendingRequest continues a request returning from the authentication framework
// without an explicit consent. The session data key must name a request parked for the
// same browser session.
func (c *LogoutCoordinator) resumePendingRequest(ctx context.Context,
	req LogoutRequestContext) (LogoutRequestContext, *LogoutError) {
	pending, found, err := c.pendingRequests.Lookup(ctx, req.SessionDataKey)
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LogoutCoordinator")).
			Error("Error occurred while reading the pending logout request", log.Error(err))
		return req, newLogoutError(ErrorKindSessionStoreFailure, err)
	}
	if !found {
		return req, newLogoutError(ErrorKindPendingRequestNotFound, nil)
	}
	restored, ok := mergePendingRequest(req, pending)
	if !ok {
		return req, newLogoutError(ErrorKindPendingRequestNotFound, nil)
	}
	return restored, nil
}

// mergePendingRequest fills the parameters missing from the request. It reports false when
// the parked request belongs to another browser session.
func mergePendingRequest(req LogoutRequestContext,
	pending session.SessionCacheEntry) (LogoutRequestContext, bool) {
	if pending.Get(pendingParamSessionState) != req.SessionState {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LogoutCoordinator")).
			Warn("Ignoring pending logout request bound to another session")
		return req, false
	}

	restored := req
	if restored.IDTokenHint == "" {
		restored.IDTokenHint = pending.Get(pendingParamIDTokenHint)
	}
	if restored.PostLogoutRedirectURI == "" {
		restored.PostLogoutRedirectURI = pending.Get(pendingParamPostLogoutRedirectURI)
	}
	if restored.State == "" {
		restored.State = pending.Get(pendingParamState)
	}
	return restored, true
}

func (c *LogoutCoordinator) discardPendingRequest(ctx context.Context, sessionDataKey string) {
	if sessionDataKey == "" {
		return
	}
	if _, err := c.pendingRequests.Invalidate(ctx, sessionDataKey); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LogoutCoordinator")).
			Warn("Failed to discard the pending logout request", log.Error(err))
	}
}

func (c *LogoutCoordinator) redirectDecision(location, reason string, clearCookie bool) LogoutDecision {
	return LogoutDecision{
		Type:               DecisionTypeRedirect,
		Location:           location,
		ClearSessionCookie: clearCookie,
		Reason:             reason,
	}
}

func (c *LogoutCoordinator) errorDecision(lerr *LogoutError) LogoutDecision {
	return LogoutDecision{
		Type: DecisionTypeError,
		Location: utils.GetURIWithQueryParams(c.settings.ErrorPageURL,
			ErrorPageParamCode, lerr.Code, ErrorPageParamMessage, lerr.Message),
		ErrorCode:    lerr.Code,
		ErrorMessage: lerr.Message,
		Reason:       string(lerr.Kind),
	}
}

func withState(uri, state string) string {
	if state == "" {
		return uri
	}
	return utils.AppendQueryParam(uri, RequestParamState, state)
}
