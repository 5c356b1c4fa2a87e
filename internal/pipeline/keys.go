package pipeline

import "github.com/abhisek/quizcrafter/internal/state"

// State keys shared across the quiz pipeline. Defined centrally so stage
// contracts and tests reference one set of names.
const (
	// KeyUserGoal is the user's request, seeded before the run starts.
	KeyUserGoal state.Key = "user_goal"

	// KeyMaterialPattern is the optional glob pattern for study materials,
	// seeded before the run starts. Empty means the goal text is the material.
	KeyMaterialPattern state.Key = "material_pattern"

	// KeyStudyMaterialSummary is written by the materials stage.
	KeyStudyMaterialSummary state.Key = "study_material_summary"

	// KeyQuizPlan is the validated quiz plan JSON, written by the planner.
	KeyQuizPlan state.Key = "quiz_plan_json"

	// KeyQuizMarkdown is the rendered quiz document, written by the writer.
	KeyQuizMarkdown state.Key = "quiz_markdown"
)
