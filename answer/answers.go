package answer

// Canned response text. The strings are part of the observable contract and
// must not be reworded.

// notReadyAnswer is returned by the readiness gate.
const notReadyAnswer = "Video processing is not complete or no video has been processed yet. " +
	"Please process a video first using the home page, then try again."

// recoveredAnswer is returned when answering panics anywhere in the cascade.
const recoveredAnswer = "I understand you're asking about this topic. While I process your question, " +
	"here's what I can share: This appears to be related to technical setup or AI models. " +
	"Could you provide more specific details about what you'd like to know?"

// greetingKeys is the match order for greeting detection.
var greetingKeys = []string{"hi", "hello", "hey", "hola", "how are you"}

var greetingResponses = map[string]string{
	"hi":          "Hello! I'm your AI assistant. I can answer questions about the video content you've processed. What would you like to know?",
	"hello":       "Hello! I'm here to help you understand the video content better. What questions do you have?",
	"hey":         "Hey there! I'm ready to answer your questions about the video. What would you like to know?",
	"hola":        "¡Hola! I can help you with questions about the video content. What would you like to ask?",
	"how are you": "I'm functioning well, thank you! I'm ready to help you explore the video content. What would you like to know about it?",
}

// knowledgeBaseKeys is the match order for the curated answer lookup.
var knowledgeBaseKeys = []string{
	"how i can run local llm",
	"what is local llm",
	"how to install local llm",
	"best local llm",
}

var knowledgeBaseAnswers = map[string]string{
	"how i can run local llm":  "To run a local LLM, you typically need to: 1) Download a model like Llama, Mistral, or Phi-3, 2) Use a framework like Ollama, LM Studio, or Text Generation WebUI, 3) Ensure you have sufficient RAM/VRAM, 4) Follow the specific setup instructions for your chosen model and platform.",
	"what is local llm":        "A local LLM (Large Language Model) is an AI model that runs on your own computer instead of through cloud services. This gives you more privacy, offline access, and control over the AI capabilities without relying on internet connectivity or external APIs.",
	"how to install local llm": "To install a local LLM: 1) Choose a model manager like Ollama or LM Studio, 2) Download and install the software, 3) Select and download your preferred model, 4) Configure the settings based on your hardware, 5) Start using the model through the provided interface or API.",
	"best local llm":           "Some popular local LLMs include: Llama 2/3 (Meta), Mistral (Mistral AI), Phi-3 (Microsoft), and Gemma (Google). The best choice depends on your hardware, use case, and whether you need coding assistance, general chat, or specific domain expertise.",
}

// contextFallbacks hedge when retrieval found context but no strategy could
// use it.
var contextFallbacks = []string{
	"Based on the video content, here's what I understand about this topic: The video covers various aspects that relate to your question. While I couldn't find a direct answer, the content suggests exploring the specific tools or methods mentioned in the video for more detailed guidance.",
	"The video discusses concepts related to your question. For running local LLMs specifically, you might want to look into popular frameworks mentioned in the content or check the documentation of tools discussed in the video.",
	"I found relevant information in the video that touches on this topic. The content suggests considering factors like hardware requirements, software setup, and model selection when working with local AI models.",
}

// noContextFallbacks hedge when retrieval found nothing at all.
var noContextFallbacks = []string{
	"Based on the video content, I don't have specific information about that topic, but the video covers other interesting aspects you might want to explore.",
	"The video doesn't seem to cover that particular question in detail, but it discusses related concepts that could provide valuable insights.",
	"I couldn't find specific information about that in the video content. You might want to ask about the main topics or key points covered in the video.",
	"That specific topic isn't extensively covered in the video. However, the video does provide valuable information on other related subjects.",
}
