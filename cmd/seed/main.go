// seed gera o script SQL de carga inicial: centro de custo raiz, almoxarifado
// padrão, categorias básicas e um usuário por perfil (admin, almoxarife,
// requisitante), com hash bcrypt calculado na geração.
//
// Uso: go run ./cmd/seed [senha-padrão]
// Por padrão usa a senha "trocar123!" para os três usuários.
// Escreve: internal/infrastructure/postgres/migrations/002_seed_base.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
)

type seedUsuario struct {
	matricula string
	nome      string
	email     string
	role      string
}

func main() {
	senha := "trocar123!"
	if len(os.Args) > 1 {
		senha = os.Args[1]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Gerar hash bcrypt: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_base.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Criar arquivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Carga inicial: centro de custo raiz, almoxarifado padrão,\n")
	out.WriteString("-- categorias básicas e um usuário por perfil.\n")
	out.WriteString("-- Gerado por cmd/seed; troque as senhas após o primeiro login.\n\n")

	centroCustoID := uuid.New().String()
	fmt.Fprintf(out, "INSERT INTO centros_custo (id, nome, parent_id, ativo)\n")
	fmt.Fprintf(out, "VALUES ('%s', 'Administração Central', NULL, TRUE)\nON CONFLICT DO NOTHING;\n\n", centroCustoID)

	fmt.Fprintf(out, "INSERT INTO almoxarifados (id, nome, codigo, localizacao, ativo)\n")
	fmt.Fprintf(out, "VALUES ('%s', 'Almoxarifado Central', 'ALM-01', 'Prédio sede, térreo', TRUE)\nON CONFLICT (codigo) DO NOTHING;\n\n", uuid.New().String())

	categorias := []struct{ nome, descricao string }{
		{"Material de Expediente", "Papelaria e insumos de escritório"},
		{"Material de Limpeza", "Produtos de higiene e limpeza predial"},
		{"Material de Informática", "Suprimentos e periféricos de TI"},
	}
	for _, cat := range categorias {
		fmt.Fprintf(out, "INSERT INTO categorias (id, nome, descricao)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s')\nON CONFLICT (nome) DO NOTHING;\n", uuid.New().String(), escapeSQL(cat.nome), escapeSQL(cat.descricao))
	}
	out.WriteString("\n")

	usuarios := []seedUsuario{
		{matricula: "100001", nome: "Administrador do Sistema", email: "admin@sistoque.local", role: entity.RoleAdmin},
		{matricula: "100002", nome: "Almoxarife Padrão", email: "almoxarife@sistoque.local", role: entity.RoleAlmoxarife},
		{matricula: "100003", nome: "Requisitante Padrão", email: "requisitante@sistoque.local", role: entity.RoleRequisitante},
	}
	for _, u := range usuarios {
		fmt.Fprintf(out, "INSERT INTO usuarios (id, matricula, nome, email, password_hash, role, centro_custo_id, ativo, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', TRUE, now(), now())\nON CONFLICT (matricula) DO NOTHING;\n",
			uuid.New().String(), u.matricula, escapeSQL(u.nome), u.email, string(hash), u.role, centroCustoID)
	}

	fmt.Printf("Gerado %s: %d usuários, %d categorias\n", outPath, len(usuarios), len(categorias))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
