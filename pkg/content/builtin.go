package content

import (
	"fmt"

	"github.com/vanderheijden86/archguide/pkg/catalog"
)

// Default returns the built-in guide. It panics if the built-in document
// fails validation, which the package tests rule out.
func Default() *Guide {
	g, err := Builtin().Build()
	if err != nil {
		panic(fmt.Sprintf("content: built-in guide is invalid: %v", err))
	}
	return g
}

// Builtin returns a fresh copy of the built-in guide document.
func Builtin() Document {
	return Document{
		Title:    "How RAG and Agentic AI Applications Work",
		Subtitle: "An Interactive Guide for Students",
		Intro: "Large language models are powerful, but they can't access your data, use tools, " +
			"or take actions on their own. RAG and agentic architectures solve this. Here's how " +
			"they work, step by step.",
		Parts: []PartDoc{
			{
				ID:     "rag",
				Kicker: "Part I",
				Title:  "Retrieval-Augmented Generation",
				Intro: "RAG solves a fundamental problem: LLMs only know what they were trained on. " +
					"They can't access your company's documents, today's news, or any private data. " +
					"RAG fixes this by retrieving relevant information at query time and injecting it " +
					"into the prompt.",
				Hint:      "Click any step in the pipeline to explore it.",
				Diagram:   ragDiagram(),
				Questions: ragQuestions(),
			},
			{
				ID:     "ingestion",
				Kicker: "Under the Hood",
				Title:  "How Documents Become Searchable",
				Intro: "Before RAG can work, your documents must be processed offline. They're split " +
					"into chunks, converted to vectors, and stored in a vector database. This is the " +
					"ingestion pipeline.",
				Diagram: ingestionDiagram(),
			},
			{
				ID:     "agent",
				Kicker: "Part II",
				Title:  "Agentic AI Applications",
				Intro: "An agent goes beyond Q&A: it can plan, use tools, remember, and take actions " +
					"in the world. Where RAG is a single retrieve-then-answer pipeline, an agent is a " +
					"reasoning loop that decides what to do next based on what it observes.",
				Hint:      "Click any component in the diagram to explore it.",
				Diagram:   agentDiagram(),
				Questions: agentQuestions(),
				Callout: "RAG vs. Agentic, when to use which? Use RAG when the task is \"answer a " +
					"question using these documents\": a single retrieval-then-generation step. Use an " +
					"agent when the task requires multiple steps, tool use, or decision-making. Many " +
					"production systems combine both: an agent that uses RAG as one of its tools.",
			},
		},
		Tradeoffs:  tradeoffs(),
		Principles: principles(),
		Footer:     "A learning resource for AI application architecture · Click the diagrams to explore",
	}
}

func ragDiagram() *catalog.DiagramSpec {
	spec := &catalog.DiagramSpec{
		ID:     "rag",
		Title:  "RAG Pipeline",
		Width:  680,
		Height: 400,
		Nodes: []catalog.DiagramNode{
			{Index: 0, Rect: catalog.Rect{X: 60, Y: 60, W: 100, H: 52}, Label: "User\nQuery", SubLabel: "Natural language", Color: catalog.ColorText, DetailKey: "query"},
			{Index: 1, Rect: catalog.Rect{X: 200, Y: 60, W: 100, H: 52}, Label: "Embed\nQuery", SubLabel: "→ vector", Color: catalog.ColorPurple, DetailKey: "embed"},
			{Index: 2, Rect: catalog.Rect{X: 340, Y: 60, W: 120, H: 52}, Label: "Vector\nSearch", SubLabel: "Find similar docs", Color: catalog.ColorBlue, DetailKey: "search"},
			{Index: 3, Rect: catalog.Rect{X: 500, Y: 60, W: 120, H: 52}, Label: "Retrieve\nContext", SubLabel: "Top-K chunks", Color: catalog.ColorGreen, DetailKey: "retrieve"},
			{Index: 4, Rect: catalog.Rect{X: 340, Y: 190, W: 140, H: 56}, Label: "Augment\nPrompt", SubLabel: "Query + Context", Color: catalog.ColorOrange, DetailKey: "augment"},
			{Index: 5, Rect: catalog.Rect{X: 170, Y: 190, W: 130, H: 56}, Label: "LLM\nGenerate", SubLabel: "Grounded answer", Color: catalog.ColorAccent, DetailKey: "generate"},
			{Index: 6, Rect: catalog.Rect{X: 30, Y: 190, W: 100, H: 56}, Label: "Response\nto User", SubLabel: "With citations", Color: catalog.ColorText, DetailKey: "respond"},
		},
		Details: []catalog.DetailRecord{
			{
				Key:  "query",
				Name: "User Query",
				Description: "A natural language question or instruction from the user. The system needs " +
					"to find relevant information before answering.",
				Example: "\"What is our company's parental leave policy?\" The LLM doesn't know this, so it must retrieve it.",
			},
			{
				Key:  "embed",
				Name: "Embed the Query",
				Description: "Convert the user's text into a numerical vector (a list of hundreds of numbers) " +
					"using an embedding model. This vector represents the meaning of the query in a " +
					"mathematical space.",
				Example: "The sentence becomes something like [0.12, -0.84, 0.31, ...], a point in " +
					"high-dimensional space where similar meanings are nearby.",
			},
			{
				Key:  "search",
				Name: "Vector Search",
				Description: "Compare the query vector against all stored document vectors to find the most " +
					"semantically similar chunks. This is searching by meaning, not keywords.",
				Example: "A query about 'parental leave' would match chunks about 'maternity policy' or " +
					"'family benefits' even if those exact words aren't used.",
			},
			{
				Key:  "retrieve",
				Name: "Retrieve Context",
				Description: "Return the top-K most relevant text chunks from the vector database. These " +
					"become the context the LLM will use to generate its answer.",
				Example: "The system might return 3–5 chunks of policy text that score highest in " +
					"similarity. More chunks = more context but more cost and latency.",
			},
			{
				Key:  "augment",
				Name: "Augment the Prompt",
				Description: "Construct the final prompt by combining the original user query with the " +
					"retrieved context. This is the 'augmentation' in RAG: injecting knowledge into the prompt.",
				Example: "\"Based on the following company policy documents: [retrieved chunks]... Answer " +
					"this question: What is our parental leave policy?\"",
			},
			{
				Key:  "generate",
				Name: "LLM Generation",
				Description: "The large language model reads the augmented prompt and generates an answer " +
					"grounded in the retrieved context, rather than relying on its training data alone.",
				Example: "The LLM synthesizes the policy chunks into a clear, coherent answer. It can cite " +
					"specific sections and handle nuance.",
			},
			{
				Key:  "respond",
				Name: "Response to User",
				Description: "The final answer is returned to the user, ideally with citations pointing back " +
					"to the source documents so the user can verify the information.",
				Example: "\"Our parental leave policy provides 16 weeks paid leave... (Source: Employee " +
					"Handbook, Section 4.2)\"",
			},
		},
		Connectors: []catalog.Connector{
			{From: 0, To: 1},
			{From: 1, To: 2},
			{From: 2, To: 3},
			{From: 3, To: 4, Label: "context chunks", Style: catalog.LineDashed, Color: catalog.ColorGreen, Curved: true},
			{From: 0, To: 4, Label: "original query", Style: catalog.LineDashed, Curved: true},
			{From: 4, To: 5},
			{From: 5, To: 6},
		},
		Decorations: []catalog.Decoration{
			{Shape: catalog.ShapeText, Rect: catalog.Rect{X: 30, Y: 30}, Label: "RETRIEVAL PHASE", Color: catalog.ColorMuted},
			{Shape: catalog.ShapeLine, Points: []catalog.Point{{X: 170, Y: 30}, {X: 630, Y: 30}}, Color: catalog.ColorBorder},
			{Shape: catalog.ShapeText, Rect: catalog.Rect{X: 30, Y: 170}, Label: "GENERATION PHASE", Color: catalog.ColorMuted},
			{Shape: catalog.ShapeLine, Points: []catalog.Point{{X: 185, Y: 170}, {X: 500, Y: 170}}, Color: catalog.ColorBorder},
			{Shape: catalog.ShapeBox, Rect: catalog.Rect{X: 360, Y: 128, W: 80, H: 26}, Label: "Vector DB", Color: catalog.ColorBlue, Dashed: true},
			{Shape: catalog.ShapeLine, Points: []catalog.Point{{X: 400, Y: 112}, {X: 400, Y: 128}}, Color: catalog.ColorBlue, Dashed: true},
			{Shape: catalog.ShapeBox, Rect: catalog.Rect{X: 520, Y: 128, W: 110, H: 40}, Label: "Knowledge Base", SubLabel: "PDFs, docs, APIs, DBs", Color: catalog.ColorMuted},
			{Shape: catalog.ShapeLine, Points: []catalog.Point{{X: 520, Y: 148}, {X: 440, Y: 142}}, Color: catalog.ColorBorder, Dashed: true},
			{Shape: catalog.ShapeText, Rect: catalog.Rect{X: 290, Y: 352}, Label: "OFFLINE INGESTION", Color: catalog.ColorMuted},
		},
		Caption: "The key insight: the LLM never \"learned\" this information. It's injected at query time via the prompt.",
		Hint:    "Click any step to learn more",
	}
	spec.Decorations = append(spec.Decorations, pipeline(140, 362, 120, 90, 22,
		"Load Docs", "Chunk Text", "Embed Chunks", "Store Vectors")...)
	return spec
}

// pipeline lays out a row of pills joined by arrows.
func pipeline(x, y, step, w, h float64, labels ...string) []catalog.Decoration {
	var out []catalog.Decoration
	for i, label := range labels {
		bx := x + float64(i)*step
		out = append(out, catalog.Decoration{
			Shape: catalog.ShapePill,
			Rect:  catalog.Rect{X: bx, Y: y, W: w, H: h},
			Label: label,
			Color: catalog.ColorBorder,
		})
		if i < len(labels)-1 {
			out = append(out, catalog.Decoration{
				Shape:  catalog.ShapeArrow,
				Points: []catalog.Point{{X: bx + w, Y: y + h/2}, {X: bx + step, Y: y + h/2}},
				Color:  catalog.ColorBorder,
			})
		}
	}
	return out
}

func ingestionDiagram() *catalog.DiagramSpec {
	spec := &catalog.DiagramSpec{
		ID:     "ingestion",
		Title:  "Ingestion Pipeline",
		Width:  600,
		Height: 210,
		Decorations: []catalog.Decoration{
			{Shape: catalog.ShapeText, Rect: catalog.Rect{X: 35, Y: 22}, Label: "DOCUMENT", Color: catalog.ColorMuted},
			{Shape: catalog.ShapeBox, Rect: catalog.Rect{X: 10, Y: 30, W: 100, H: 130}, Color: catalog.ColorBorder},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 110, Y: 95}, {X: 140, Y: 95}}, Color: catalog.ColorMuted},
			{Shape: catalog.ShapeText, Rect: catalog.Rect{X: 165, Y: 22}, Label: "CHUNK", Color: catalog.ColorOrange},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 225, Y: 95}, {X: 260, Y: 95}}, Color: catalog.ColorMuted},
			{Shape: catalog.ShapeBox, Rect: catalog.Rect{X: 265, Y: 68, W: 90, H: 54}, Label: "Embedding", SubLabel: "Model", Color: catalog.ColorPurple},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 355, Y: 95}, {X: 390, Y: 95}}, Color: catalog.ColorMuted},
			{Shape: catalog.ShapeText, Rect: catalog.Rect{X: 415, Y: 22}, Label: "VECTORS", Color: catalog.ColorBlue},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 485, Y: 95}, {X: 520, Y: 95}}, Color: catalog.ColorMuted},
			{Shape: catalog.ShapeBox, Rect: catalog.Rect{X: 525, Y: 55, W: 65, H: 80}, Label: "Vector\nDB", SubLabel: "Pinecone", Color: catalog.ColorGreen},
		},
		Caption: "Semantically similar text produces nearby vectors, enabling search by meaning, not keywords",
	}
	for i := 0; i < 7; i++ {
		y := 50 + float64(i)*15
		spec.Decorations = append(spec.Decorations, catalog.Decoration{
			Shape:  catalog.ShapeLine,
			Points: []catalog.Point{{X: 20, Y: y}, {X: 100, Y: y}},
			Color:  catalog.ColorBorder,
		})
	}
	for i := 0; i < 4; i++ {
		y := 34 + float64(i)*36
		spec.Decorations = append(spec.Decorations,
			catalog.Decoration{
				Shape: catalog.ShapeBox,
				Rect:  catalog.Rect{X: 145, Y: y, W: 80, H: 28},
				Label: fmt.Sprintf("Chunk %d", i+1),
				Color: catalog.ColorOrange,
			},
			catalog.Decoration{
				Shape: catalog.ShapeBox,
				Rect:  catalog.Rect{X: 395, Y: y, W: 90, H: 28},
				Label: "[0.12, -0.84, 0.31…]",
				Color: catalog.ColorBlue,
			},
		)
	}
	return spec
}

func agentDiagram() *catalog.DiagramSpec {
	spec := &catalog.DiagramSpec{
		ID:     "agent",
		Title:  "Agent Architecture",
		Width:  660,
		Height: 420,
		Nodes: []catalog.DiagramNode{
			{Index: 0, Rect: catalog.Rect{X: 20, Y: 172, W: 100, H: 46}, Label: "User Task", SubLabel: "Goal or question", Color: catalog.ColorText, DetailKey: "task"},
			{Index: 1, Rect: catalog.Rect{X: 270, Y: 30, W: 120, H: 50}, Label: "Planning", SubLabel: "Break down tasks", Color: catalog.ColorPurple, DetailKey: "planning"},
			{Index: 2, Rect: catalog.Rect{X: 490, Y: 60, W: 130, H: 52}, Label: "Tools", SubLabel: "APIs, search, code, DB", Color: catalog.ColorBlue, DetailKey: "tools"},
			{Index: 3, Rect: catalog.Rect{X: 40, Y: 60, W: 130, H: 52}, Label: "Memory", SubLabel: "Short & long-term", Color: catalog.ColorOrange, DetailKey: "memory"},
			{Index: 4, Rect: catalog.Rect{X: 80, Y: 290, W: 140, H: 52}, Label: "RAG / Retrieval", SubLabel: "Knowledge grounding", Color: catalog.ColorTeal, DetailKey: "retrieval"},
			{Index: 5, Rect: catalog.Rect{X: 430, Y: 290, W: 140, H: 52}, Label: "Guardrails", SubLabel: "Safety & evaluation", Color: catalog.ColorPink, DetailKey: "guardrails"},
			{Index: 6, Rect: catalog.Rect{X: 540, Y: 172, W: 100, H: 46}, Label: "Final Output", SubLabel: "Result + reasoning", Color: catalog.ColorGreen, DetailKey: "output"},
		},
		Details: []catalog.DetailRecord{
			{
				Key:  "task",
				Name: "User Task",
				Description: "A goal or complex question that requires multiple steps to complete. Unlike " +
					"simple Q&A, agentic tasks often need research, reasoning, and action.",
				Example: "\"Research the top 3 competitors in our market, compare their pricing, and draft " +
					"a summary for the team.\" This requires search, analysis, and writing: multiple steps.",
			},
			{
				Key:  "planning",
				Name: "Planning",
				Description: "The agent breaks a complex task into smaller, manageable sub-tasks and decides " +
					"the order to execute them. This can use techniques like chain-of-thought or task decomposition.",
				Techniques: []string{"Chain-of-thought prompting", "ReAct (Reason + Act)", "Task decomposition", "Self-reflection and replanning"},
			},
			{
				Key:  "tools",
				Name: "Tool Use",
				Description: "The agent can call external tools to take actions in the real world: searching " +
					"the web, running code, querying databases, calling APIs, or reading files. This is what " +
					"makes agents more than chatbots.",
				Techniques: []string{"Function calling / tool calling", "Code interpreter / sandbox", "Web search and browsing", "API integrations (Slack, email, CRM)"},
			},
			{
				Key:  "memory",
				Name: "Memory",
				Description: "The agent maintains context across its reasoning steps. Short-term memory is the " +
					"current conversation. Long-term memory persists across sessions using vector stores or databases.",
				Techniques: []string{"Conversation history (short-term)", "Vector store memory (long-term)", "Scratchpad for intermediate results", "Episodic memory of past tasks"},
			},
			{
				Key:  "retrieval",
				Name: "RAG / Retrieval",
				Description: "Agents use RAG to ground their reasoning in factual knowledge. When the agent " +
					"needs information it doesn't have, it retrieves relevant documents and incorporates them " +
					"into its reasoning.",
				Techniques: []string{"Same RAG pipeline as Part I", "Dynamic retrieval (agent decides when)", "Multi-source retrieval", "Re-ranking retrieved results"},
			},
			{
				Key:  "guardrails",
				Name: "Guardrails & Evaluation",
				Description: "Safety checks and quality gates that validate the agent's actions and outputs. " +
					"Guardrails prevent harmful outputs; evaluation checks if the response actually answers " +
					"the question well.",
				Techniques: []string{"Input/output content filtering", "Hallucination detection", "Tool call validation", "Automated evaluation (LLM-as-judge)"},
			},
			{
				Key:  "output",
				Name: "Final Output",
				Description: "The completed result returned to the user, along with the reasoning trace " +
					"showing how the agent arrived at its answer. Transparency builds trust.",
				Example: "The agent delivers the competitor analysis, shows which sources it used, and " +
					"explains the reasoning behind its comparisons.",
			},
		},
		Decorations: []catalog.Decoration{
			{Shape: catalog.ShapeEllipse, Rect: catalog.Rect{X: 240, Y: 140, W: 180, H: 110}, Label: "Agent\nReasoning Loop", SubLabel: "Think → Act → Observe", Color: catalog.ColorAccent},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 120, Y: 195}, {X: 240, Y: 195}}, Color: catalog.ColorMuted},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 420, Y: 195}, {X: 540, Y: 195}}, Color: catalog.ColorMuted},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 330, Y: 80}, {X: 330, Y: 140}}, Label: "plan", Color: catalog.ColorPurple, Dashed: true},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 410, Y: 165}, {X: 490, Y: 100}}, Label: "call", Color: catalog.ColorBlue, Dashed: true},
			{Shape: catalog.ShapeLine, Points: []catalog.Point{{X: 490, Y: 108}, {X: 416, Y: 173}}, Label: "result", Color: catalog.ColorBlue, Dashed: true},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 170, Y: 100}, {X: 250, Y: 165}}, Label: "recall", Color: catalog.ColorOrange, Dashed: true},
			{Shape: catalog.ShapeLine, Points: []catalog.Point{{X: 244, Y: 173}, {X: 164, Y: 108}}, Label: "store", Color: catalog.ColorOrange, Dashed: true},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 240, Y: 240}, {X: 180, Y: 290}}, Label: "query docs", Color: catalog.ColorTeal, Dashed: true},
			{Shape: catalog.ShapeLine, Points: []catalog.Point{{X: 190, Y: 290}, {X: 260, Y: 240}}, Label: "context", Color: catalog.ColorTeal, Dashed: true},
			{Shape: catalog.ShapeArrow, Points: []catalog.Point{{X: 400, Y: 240}, {X: 460, Y: 290}}, Label: "check", Color: catalog.ColorPink, Dashed: true},
		},
		Caption: "The agent loops through Think → Act → Observe until it has enough information to respond.",
		Hint:    "Click any component to learn more",
	}
	for i, label := range []string{"Search", "Code", "Data", "API"} {
		spec.Decorations = append(spec.Decorations, catalog.Decoration{
			Shape: catalog.ShapePill,
			Rect:  catalog.Rect{X: 495 + float64(i%2)*65, Y: 118 + float64(i/2)*24, W: 58, H: 18},
			Label: label,
			Color: catalog.ColorBorder,
		})
	}
	return spec
}

func ragQuestions() *QuestionsDoc {
	return &QuestionsDoc{
		ID:    "rag",
		Title: "Key Design Decisions in RAG",
		Entries: []catalog.QAEntry{
			{
				Key:      "rag-0",
				Question: "How big should chunks be?",
				Answer: "Too small and you lose context. Too large and you dilute relevance and spend more " +
					"on tokens. Typical range: 200–1000 tokens. Overlapping chunks (e.g., 20% overlap) help " +
					"preserve context across boundaries.",
			},
			{
				Key:      "rag-1",
				Question: "How many chunks to retrieve (Top-K)?",
				Answer: "More chunks = more context for the LLM, but also more cost, latency, and risk of " +
					"including irrelevant content. Start with K=3–5 and tune based on answer quality.",
			},
			{
				Key:      "rag-2",
				Question: "Which embedding model?",
				Answer: "OpenAI's text-embedding-3-small is a popular default. Open-source alternatives " +
					"(BGE, E5, Nomic) can be self-hosted for cost and privacy. Dimension size affects storage " +
					"and search speed.",
			},
			{
				Key:      "rag-3",
				Question: "When to use a reranker?",
				Answer: "Vector search finds roughly relevant chunks. A cross-encoder reranker (like Cohere " +
					"Rerank) re-scores them for precise relevance. Adds latency but significantly improves " +
					"quality for complex queries.",
			},
		},
	}
}

func agentQuestions() *QuestionsDoc {
	return &QuestionsDoc{
		ID:    "agent",
		Title: "Key Design Decisions for Agents",
		Entries: []catalog.QAEntry{
			{
				Key:      "agent-0",
				Question: "Single agent or multi-agent?",
				Answer: "A single agent handles simpler tasks. Multi-agent systems assign specialized roles " +
					"(researcher, writer, reviewer) that collaborate. Multi-agent is more powerful but " +
					"dramatically harder to debug and coordinate.",
			},
			{
				Key:      "agent-1",
				Question: "How much autonomy to give?",
				Answer: "Fully autonomous agents can take many actions without user approval: faster but " +
					"riskier. Human-in-the-loop agents pause for confirmation on important decisions. Most " +
					"production systems start with more human oversight.",
			},
			{
				Key:      "agent-2",
				Question: "How to handle errors and loops?",
				Answer: "Agents can get stuck in loops or make mistakes. Set maximum iteration limits, " +
					"implement self-reflection (\"Is this working?\"), and build in fallback paths. Timeouts " +
					"and cost caps prevent runaway agents.",
			},
			{
				Key:      "agent-3",
				Question: "Which framework to use?",
				Answer: "LangChain and LlamaIndex are popular but can be heavyweight. Anthropic's tool-use " +
					"API, OpenAI's Assistants API, and lighter frameworks like Instructor offer simpler " +
					"approaches. Many teams build custom loops for production.",
			},
		},
	}
}

func tradeoffs() Tradeoffs {
	return Tradeoffs{
		Kicker: "Part III",
		Title:  "Design Tradeoffs",
		Intro: "Every decision in AI application design involves tension between competing goals. " +
			"Improving accuracy often increases cost and latency. Adding safety layers adds latency. " +
			"Understanding these tensions is essential.",
		Dimensions: []Dimension{
			{Label: "Accuracy", Color: catalog.ColorGreen, Hint: "More chunks, bigger models"},
			{Label: "Latency", Color: catalog.ColorBlue, Hint: "Fewer steps, smaller models"},
			{Label: "Cost", Color: catalog.ColorOrange, Hint: "Fewer API calls, caching"},
			{Label: "Safety", Color: catalog.ColorPink, Hint: "More guardrails, filtering"},
		},
		Caption: "Improving any one dimension usually comes at the expense of another",
		Pairs: []TradeoffPair{
			{
				Left:  TradeoffSide{Label: "Accuracy", Color: catalog.ColorGreen, Desc: "Larger models, more retrieved chunks, reranking, chain-of-thought reasoning"},
				Right: TradeoffSide{Label: "Cost & Speed", Color: catalog.ColorOrange, Desc: "Smaller models, fewer chunks, simpler prompts, cached responses"},
				Tension: "The most accurate RAG system might cost 10× more per query. For many use cases, " +
					"a well-tuned cheaper approach is good enough.",
			},
			{
				Left:  TradeoffSide{Label: "Autonomy", Color: catalog.ColorPurple, Desc: "Agent takes many actions independently, faster completion, less user friction"},
				Right: TradeoffSide{Label: "Control", Color: catalog.ColorPink, Desc: "Human approves each action, slower but safer, easier to debug"},
				Tension: "Fully autonomous agents are powerful but can make expensive mistakes. Start with " +
					"human-in-the-loop and remove guardrails as you build trust.",
			},
			{
				Left:  TradeoffSide{Label: "Freshness", Color: catalog.ColorBlue, Desc: "Real-time data, frequent re-indexing, live retrieval from APIs"},
				Right: TradeoffSide{Label: "Reliability", Color: catalog.ColorTeal, Desc: "Curated knowledge base, tested and validated sources, stable results"},
				Tension: "Live data gives current answers but introduces failure modes. A curated knowledge " +
					"base is more reliable but can become stale.",
			},
		},
	}
}

func principles() []Principle {
	return []Principle{
		{
			Title: "Start with RAG, Not Agents",
			Body: "Retrieval-augmented generation solves most \"the AI doesn't know X\" problems simply and " +
				"reliably. Only add agentic capabilities when you genuinely need multi-step reasoning or tool use.",
		},
		{
			Title: "Evaluate Before You Optimize",
			Body: "Build an evaluation dataset of questions and expected answers before tuning anything. " +
				"Without measurement, you're guessing. Automated evals (LLM-as-judge) help you iterate faster.",
		},
		{
			Title: "Chunking Is Everything",
			Body: "The quality of your RAG system depends more on how you chunk and index documents than on " +
				"which LLM you use. Invest heavily in your ingestion pipeline. It's the foundation.",
		},
		{
			Title: "Design for Transparency",
			Body: "Users trust AI more when they can see why it gave an answer. Show sources, display " +
				"confidence, expose the reasoning chain. A transparent mediocre system often beats an opaque " +
				"excellent one.",
		},
		{
			Title: "Cost Compounds Fast",
			Body: "Every LLM call, embedding, and vector search costs money. An agent making 10 tool calls " +
				"per request at scale gets expensive quickly. Cache aggressively, use smaller models where possible.",
		},
		{
			Title: "Hallucinations Are Inevitable",
			Body: "Even with RAG, LLMs can fabricate details. Design your UX to handle this: show sources, " +
				"allow verification, avoid high-stakes autonomous decisions without human review.",
		},
	}
}
