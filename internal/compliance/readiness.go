package compliance

// CompliantAnswer is the only response value that counts as compliant.
const CompliantAnswer = "yes"

// NotAnsweredLabel marks a question the client never answered. Reports
// separate these "unassessed" entries from explicit negative answers.
const NotAnsweredLabel = "Not Answered"

// AssessReadiness scores one client's questionnaire answers against a
// regulation's question set. It returns a *NoQuestionsError when the
// regulation defines no questionnaire: readiness cannot be computed and
// must not be silently reported as zero.
//
// Per-question verdicts follow the regulation's authored question order. A
// missing answer is reported as NotAnsweredLabel and is non-compliant, but
// remains distinguishable from an explicit "no". Non-compliant questions
// carry their failure guidance verbatim when the regulation provides one.
func AssessReadiness(reg Regulation, answers []ReadinessResponse) (ReadinessResult, error) {
	if len(reg.Questions) == 0 {
		return ReadinessResult{}, &NoQuestionsError{RegulationID: reg.ID}
	}

	byQuestion := make(map[string]string, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Response
	}

	result := ReadinessResult{
		RegulationID: reg.ID,
		PerQuestion:  make([]QuestionVerdict, 0, len(reg.Questions)),
	}
	compliant := 0
	for _, q := range reg.Questions {
		verdict := QuestionVerdict{QuestionID: q.ID}
		answer, answered := byQuestion[q.ID]
		if !answered {
			verdict.Answer = NotAnsweredLabel
		} else {
			verdict.Answer = answer
			verdict.Compliant = answer == CompliantAnswer
		}
		if verdict.Compliant {
			compliant++
		} else if q.FailureGuidance != "" {
			verdict.Guidance = q.FailureGuidance
		}
		result.PerQuestion = append(result.PerQuestion, verdict)
	}
	result.Score = Percentage(compliant, len(reg.Questions))
	return result, nil
}
