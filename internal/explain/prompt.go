package explain

import (
	"fmt"
	"strings"
)

const systemPrompt = `Você é um professor de matemática paciente. Um aluno errou uma questão de um exercício de treino e quer ver a resolução passo a passo. Responda sempre em português do Brasil.`

func buildUserMessage(input Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Categoria: %s\n", input.Question.Category)
	fmt.Fprintf(&b, "Nível: %d\n", input.Question.Level)
	b.WriteString("\nQuestão:\n")
	b.WriteString(input.Question.Text)
	b.WriteString("\n")
	fmt.Fprintf(&b, "\nResposta correta: %s\n", input.Question.Answer.String())

	submitted := strings.TrimSpace(input.Submitted)
	if submitted == "" {
		submitted = "(em branco)"
	}
	fmt.Fprintf(&b, "Resposta do aluno: %s\n", submitted)

	b.WriteString(`
Instruções:
1. Resolva a questão em 2 a 6 passos curtos, mostrando cada conta.
2. Use a fórmula da questão. Arredonde para 2 casas decimais apenas no final.
3. O resultado final deve ser exatamente a resposta correta informada acima.
4. Na dica, aponte o erro provável que levou à resposta do aluno, sem julgamentos.
5. Use apenas texto simples: sem LaTeX, sem markdown.`)

	return b.String()
}
