package ai

import "strings"

// BuildVivaPrompt asks the model for exactly one question-answer pair per
// difficulty level for the given assessment metric. The labelled format is
// load-bearing: ParseQuestionBlock matches these headings verbatim.
func BuildVivaPrompt(assignmentDescription, metricType string) string {
	builder := strings.Builder{}
	builder.WriteString("You are an AI tutor designing viva questions based on the assignment description.\n")
	builder.WriteString("For the metric \"")
	builder.WriteString(metricType)
	builder.WriteString("\", generate exactly one question-answer pair for each difficulty level:\n\n")
	builder.WriteString("- Easy Question: basic understanding level\n")
	builder.WriteString("- Moderate Question: requires some analysis or explanation\n")
	builder.WriteString("- Difficult Question: involves application or deeper thinking\n\n")
	builder.WriteString("Assignment Description:\n")
	builder.WriteString(assignmentDescription)
	builder.WriteString("\n\nFormat:\n")
	builder.WriteString("- Easy Question: <question>\nAnswer: <answer>\n")
	builder.WriteString("- Moderate Question: <question>\nAnswer: <answer>\n")
	builder.WriteString("- Difficult Question: <question>\nAnswer: <answer>\n\n")
	builder.WriteString("Ensure the response only includes one question-answer pair per difficulty level. Do not include additional information.\n")
	return builder.String()
}

// BuildFileNamingPrompt asks the model to audit file naming conventions in a
// repository and reply with a bare JSON verdict.
func BuildFileNamingPrompt(repoURL string) string {
	builder := strings.Builder{}
	builder.WriteString("You are an AI code analyzer examining GitHub repositories. Analyze the repository at ")
	builder.WriteString(repoURL)
	builder.WriteString(" and check whether all files follow standard naming conventions for their languages or file types.\n\n")
	builder.WriteString("Apply the usual language-specific conventions (snake_case Python modules, PascalCase React components and Java classes, ")
	builder.WriteString("snake_case C/C++ sources, lowercase config files, uppercase top-level docs such as README.md). ")
	builder.WriteString("Ignore generated files and dependency directories such as node_modules, dist or build, and respect framework conventions.\n\n")
	builder.WriteString("IMPORTANT: return ONLY a valid JSON object with no additional text, markdown or formatting:\n")
	builder.WriteString(`{"status": "Yes"}`)
	builder.WriteString("\nOR\n")
	builder.WriteString(`{"status": "No", "invalid_files": [{"file_name": "...", "path": "...", "reason": "..."}]}`)
	builder.WriteString("\n")
	return builder.String()
}

// BuildCodeNamingPrompt asks the model to audit identifier naming inside the
// repository's code and reply with a bare JSON verdict.
func BuildCodeNamingPrompt(repoURL string) string {
	builder := strings.Builder{}
	builder.WriteString("You are an expert code reviewer analyzing the GitHub repository at ")
	builder.WriteString(repoURL)
	builder.WriteString(". Base the analysis solely on code actually present in the repository. Examine variable, function, class, constant, ")
	builder.WriteString("parameter, interface and enum names against the conventions of each language. Names must be descriptive; ")
	builder.WriteString("single-letter identifiers are acceptable only as loop counters. Exclude generated code, third-party libraries, ")
	builder.WriteString("build configuration and test fixtures.\n\n")
	builder.WriteString("IMPORTANT: return ONLY a valid JSON object with no additional text, markdown or formatting:\n")
	builder.WriteString(`{"status": "Yes"}`)
	builder.WriteString("\nOR\n")
	builder.WriteString(`{"status": "No", "issues": [{"file_path": "...", "line_number": 1, "element_type": "variable", "element_name": "...", "suggested_name": "...", "reason": "..."}]}`)
	builder.WriteString("\n")
	return builder.String()
}

// BuildCommentAccuracyPrompt asks the model whether comments in the
// repository accurately describe the code they annotate.
func BuildCommentAccuracyPrompt(repoURL string) string {
	builder := strings.Builder{}
	builder.WriteString("You are an expert code reviewer analyzing the GitHub repository at ")
	builder.WriteString(repoURL)
	builder.WriteString(". Examine docstrings, inline comments, block comments and file headers, and check that each accurately describes ")
	builder.WriteString("what the code actually does: parameters and return values documented correctly, no outdated or contradictory ")
	builder.WriteString("comments, no missing documentation on public APIs. Exclude generated code, third-party libraries, build files and TODO comments.\n\n")
	builder.WriteString("IMPORTANT: return ONLY a valid JSON object with no additional text, markdown or formatting:\n")
	builder.WriteString(`{"status": "Pass"}`)
	builder.WriteString("\nOR\n")
	builder.WriteString(`{"status": "Fail", "issues": [{"file_path": "...", "line_number": 1, "comment_type": "inline", "actual_comment": "...", "issue": "...", "suggestion": "..."}]}`)
	builder.WriteString("\n")
	return builder.String()
}
