// Package prompt fills a form tree interactively. A Driver asks one question
// per leaf control; NewSurveyDriver is the terminal implementation.
package prompt
