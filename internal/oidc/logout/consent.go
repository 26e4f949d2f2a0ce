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
	"strings"

	"github.com/asgardeo/oidclogout/internal/system/utils"
)

// ConsentState is a state of the logout consent state machine.
type ConsentState string

const (
	ConsentStateNoActiveSession ConsentState = "NoActiveSession"
	ConsentStateSessionNotFound ConsentState = "SessionNotFound"
	ConsentStateDenied          ConsentState = "ConsentDenied"
	ConsentStateGiven           ConsentState = "ConsentGiven"
	ConsentStateFlowIncomplete  ConsentState = "FlowIncomplete"
	ConsentStateResumed         ConsentState = "ConsentResumed"
	ConsentStateSkipped         ConsentState = "ConsentSkipped"
	ConsentStateRequired        ConsentState = "ConsentRequired"
)

// ConsentInput is the observation the consent state machine decides on.
type ConsentInput struct {
	HasSessionCookie  bool
	SessionExists     bool
	Consent           string
	FlowStatus        FlowStatus
	HasSessionDataKey bool
	SkipConsent       bool
}

type consentTransition struct {
	guard  func(in ConsentInput) bool
	target ConsentState
}

// consentTransitions is evaluated in order and the first matching guard wins. The last
// guard always matches.
var consentTransitions = []consentTransition{
	{func(in ConsentInput) bool { return !in.HasSessionCookie }, ConsentStateNoActiveSession},
	{func(in ConsentInput) bool { return !in.SessionExists }, ConsentStateSessionNotFound},
	{func(in ConsentInput) bool { return consentProvided(in.Consent) && !isApproval(in.Consent) }, ConsentStateDenied},
	{func(in ConsentInput) bool { return isApproval(in.Consent) }, ConsentStateGiven},
	{func(in ConsentInput) bool { return in.FlowStatus == FlowStatusIncomplete }, ConsentStateFlowIncomplete},
	{func(in ConsentInput) bool { return in.FlowStatus == FlowStatusSuccessCompleted }, ConsentStateGiven},
	{func(in ConsentInput) bool { return in.HasSessionDataKey }, ConsentStateResumed},
	{func(in ConsentInput) bool { return in.SkipConsent }, ConsentStateSkipped},
	{func(ConsentInput) bool { return true }, ConsentStateRequired},
}

// ConsentOrchestrator decides how a logout request proceeds with respect to end user consent.
type ConsentOrchestrator struct {
	transitions []consentTransition
}

// NewConsentOrchestrator creates a consent orchestrator.
func NewConsentOrchestrator() *ConsentOrchestrator {
	return &ConsentOrchestrator{transitions: consentTransitions}
}

// Evaluate returns the state the request transitions to.
func (o *ConsentOrchestrator) Evaluate(in ConsentInput) ConsentState {
	for _, t := range o.transitions {
		if t.guard(in) {
			return t.target
		}
	}
	return ConsentStateRequired
}

func consentProvided(consent string) bool {
	return !utils.IsBlank(consent)
}

func isApproval(consent string) bool {
	return strings.EqualFold(strings.TrimSpace(consent), ConsentApprove)
}
