// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.
package ast

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lidianzhong/sysy/internal/compileerr"
)

// ParseError is the panic payload raised on any syntax error. Parse
// converts it into a returned error; a syntax error is always fatal to
// the compile and the driver exits non-zero without producing output.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return "ParseError: " + e.Msg }

// Parser is a single-token-lookahead recursive-descent parser.
type Parser struct {
	lexer  *Lexer
	token  TokenKind
	lexeme string
}

// NewParser creates a parser reading from r.
func NewParser(r io.Reader) *Parser {
	p := &Parser{lexer: NewLexer(r)}
	p.consume()
	return p
}

func (p *Parser) consume() {
	p.token, p.lexeme = p.lexer.NextToken()
}

func (p *Parser) expect(kind TokenKind) string {
	if p.token != kind {
		panic(&ParseError{Msg: fmt.Sprintf("expected %s, got %s (%q)", kind, p.token, p.lexeme)})
	}
	lexeme := p.lexeme
	p.consume()
	return lexeme
}

// Parse parses a full CompUnit, converting any panic raised by expect
// into a returned error matching compileerr.ErrParseError.
func Parse(r io.Reader) (cu *CompUnit, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if pe, ok := rec.(*ParseError); ok {
				err = compileerr.Newf(compileerr.ErrParseError, "%s", pe.Msg)
				return
			}
			panic(rec)
		}
	}()
	p := NewParser(r)
	cu = p.parseCompUnit()
	return cu, nil
}

func (p *Parser) parseCompUnit() *CompUnit {
	return &CompUnit{Func: p.parseFuncDef()}
}

func (p *Parser) parseFuncDef() *FuncDef {
	var retType string
	switch p.token {
	case KW_INT:
		retType = "int"
	case KW_VOID:
		retType = "void"
	default:
		panic(&ParseError{Msg: fmt.Sprintf("expected function return type, got %s", p.token)})
	}
	p.consume()
	name := p.expect(TK_IDENT)
	p.expect(TK_LPAREN)
	p.expect(TK_RPAREN)
	body := p.parseBlock()
	return &FuncDef{RetType: retType, Name: name, Body: body}
}

func (p *Parser) parseBlock() *Block {
	p.expect(TK_LBRACE)
	items := make([]BlockItem, 0)
	for p.token != TK_RBRACE {
		items = append(items, p.parseBlockItem())
	}
	p.expect(TK_RBRACE)
	return &Block{Items: items}
}

func (p *Parser) parseBlockItem() BlockItem {
	switch p.token {
	case KW_CONST:
		return p.parseConstDecl()
	case KW_INT:
		return p.parseVarDecl()
	case KW_RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseAssignStmt()
	}
}

func (p *Parser) parseConstDecl() *ConstDecl {
	p.expect(KW_CONST)
	p.expect(KW_INT)
	defs := []*ConstDef{p.parseConstDef()}
	for p.token == TK_COMMA {
		p.consume()
		defs = append(defs, p.parseConstDef())
	}
	p.expect(TK_SEMI)
	return &ConstDecl{BaseType: "int", Defs: defs}
}

func (p *Parser) parseConstDef() *ConstDef {
	name := p.expect(TK_IDENT)
	p.expect(TK_ASSIGN)
	init := p.parseExpr()
	return &ConstDef{Name: name, Init: init}
}

func (p *Parser) parseVarDecl() *VarDecl {
	p.expect(KW_INT)
	defs := []*VarDef{p.parseVarDef()}
	for p.token == TK_COMMA {
		p.consume()
		defs = append(defs, p.parseVarDef())
	}
	p.expect(TK_SEMI)
	return &VarDecl{BaseType: "int", Defs: defs}
}

func (p *Parser) parseVarDef() *VarDef {
	name := p.expect(TK_IDENT)
	var init Expr
	if p.token == TK_ASSIGN {
		p.consume()
		init = p.parseExpr()
	}
	return &VarDef{Name: name, Init: init}
}

func (p *Parser) parseReturnStmt() *ReturnStmt {
	p.expect(KW_RETURN)
	var value Expr
	if p.token != TK_SEMI {
		value = p.parseExpr()
	}
	p.expect(TK_SEMI)
	return &ReturnStmt{Value: value}
}

func (p *Parser) parseAssignStmt() *AssignStmt {
	name := p.expect(TK_IDENT)
	p.expect(TK_ASSIGN)
	value := p.parseExpr()
	p.expect(TK_SEMI)
	return &AssignStmt{Target: &LVal{Name: name}, Value: value}
}

// -----------------------------------------------------------------------
// Expressions, by precedence (lowest to highest): || && == != < > <= >=
// + - * / % unary

func (p *Parser) parseExpr() Expr { return p.parseLOrExpr() }

func (p *Parser) parseLOrExpr() Expr {
	lhs := p.parseLAndExpr()
	for p.token == TK_LOGOR {
		p.consume()
		lhs = &BinaryExpr{Op: "||", LHS: lhs, RHS: p.parseLAndExpr()}
	}
	return lhs
}

func (p *Parser) parseLAndExpr() Expr {
	lhs := p.parseEqExpr()
	for p.token == TK_LOGAND {
		p.consume()
		lhs = &BinaryExpr{Op: "&&", LHS: lhs, RHS: p.parseEqExpr()}
	}
	return lhs
}

func (p *Parser) parseEqExpr() Expr {
	lhs := p.parseRelExpr()
	for p.token == TK_EQ || p.token == TK_NE {
		op := "=="
		if p.token == TK_NE {
			op = "!="
		}
		p.consume()
		lhs = &BinaryExpr{Op: op, LHS: lhs, RHS: p.parseRelExpr()}
	}
	return lhs
}

func (p *Parser) parseRelExpr() Expr {
	lhs := p.parseAddExpr()
	for p.token == TK_LT || p.token == TK_GT || p.token == TK_LE || p.token == TK_GE {
		op := map[TokenKind]string{TK_LT: "<", TK_GT: ">", TK_LE: "<=", TK_GE: ">="}[p.token]
		p.consume()
		lhs = &BinaryExpr{Op: op, LHS: lhs, RHS: p.parseAddExpr()}
	}
	return lhs
}

func (p *Parser) parseAddExpr() Expr {
	lhs := p.parseMulExpr()
	for p.token == TK_PLUS || p.token == TK_MINUS {
		op := "+"
		if p.token == TK_MINUS {
			op = "-"
		}
		p.consume()
		lhs = &BinaryExpr{Op: op, LHS: lhs, RHS: p.parseMulExpr()}
	}
	return lhs
}

func (p *Parser) parseMulExpr() Expr {
	lhs := p.parseUnaryExpr()
	for p.token == TK_TIMES || p.token == TK_DIV || p.token == TK_MOD {
		op := map[TokenKind]string{TK_TIMES: "*", TK_DIV: "/", TK_MOD: "%"}[p.token]
		p.consume()
		lhs = &BinaryExpr{Op: op, LHS: lhs, RHS: p.parseUnaryExpr()}
	}
	return lhs
}

func (p *Parser) parseUnaryExpr() Expr {
	switch p.token {
	case TK_PLUS:
		p.consume()
		return &UnaryExpr{Op: "+", Sub: p.parseUnaryExpr()}
	case TK_MINUS:
		p.consume()
		return &UnaryExpr{Op: "-", Sub: p.parseUnaryExpr()}
	case TK_NOT:
		p.consume()
		return &UnaryExpr{Op: "!", Sub: p.parseUnaryExpr()}
	default:
		return p.parsePrimaryExpr()
	}
}

func (p *Parser) parsePrimaryExpr() Expr {
	switch p.token {
	case TK_LPAREN:
		p.consume()
		e := p.parseExpr()
		p.expect(TK_RPAREN)
		return e
	case TK_IDENT:
		name := p.lexeme
		p.consume()
		return &LVal{Name: name}
	case LIT_INT:
		lexeme := p.lexeme
		p.consume()
		v, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			panic(&ParseError{Msg: fmt.Sprintf("invalid integer literal %q: %v", lexeme, err)})
		}
		return &NumberExpr{Value: int32(v)}
	default:
		panic(&ParseError{Msg: fmt.Sprintf("unexpected token %s (%q) in expression", p.token, p.lexeme)})
	}
}
