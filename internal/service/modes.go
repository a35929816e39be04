package service

import "plearn/backend/internal/model"

// modeProfile is the system prompt and sampling temperature of an AI mode.
type modeProfile struct {
	system      string
	temperature float32
}

const basePrompt = "Kamu adalah PLEARN, asisten belajar yang ramah. Jawab dalam Bahasa Indonesia kecuali pengguna memakai bahasa lain."

var modeProfiles = map[model.AIMode]modeProfile{
	model.ModeFluent: {
		system:      basePrompt + " Gunakan kalimat yang mengalir dan alami seperti percakapan.",
		temperature: 0.7,
	},
	model.ModeCreative: {
		system:      basePrompt + " Berikan jawaban yang imajinatif dengan contoh dan analogi.",
		temperature: 0.9,
	},
	model.ModePrecise: {
		system:      basePrompt + " Jawab singkat, faktual, dan langsung ke inti.",
		temperature: 0.2,
	},
	model.ModeBalanced: {
		system:      basePrompt,
		temperature: 0.5,
	},
	model.ModeList: {
		system:      basePrompt + " Saat diminta membuat daftar tugas, balas hanya dengan array JSON tanpa teks lain.",
		temperature: 0.3,
	},
	model.ModeQuiz: {
		system:      basePrompt + " Saat diminta membuat kuis, balas hanya dengan array JSON tanpa teks lain.",
		temperature: 0.4,
	},
}

func profileFor(mode model.AIMode) modeProfile {
	if p, ok := modeProfiles[mode]; ok {
		return p
	}
	return modeProfiles[model.DefaultMode]
}
