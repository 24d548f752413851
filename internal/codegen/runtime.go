package codegen

import "strings"

// writeRuntimeHelpers emits the two small assembly routines that back
// the print/scan intrinsics' non-string-literal path: decimal
// integer-to-ASCII conversion for print, and ASCII-to-integer parsing
// for scan. They are ordinary NASM labels in .text, not Zinc
// functions, and are named with a zinc_rt_ prefix so they can't
// collide with a user-defined identifier of the same name.
func writeRuntimeHelpers(out *strings.Builder, usesScan bool) {
	out.WriteString(`zinc_rt_print_int:
    ; in: rax = integer value to print. out: rax = bytes written.
    mov rbx, rax
    mov rdi, num_buf
    add rdi, 19
    xor rcx, rcx
    xor r8, r8
    cmp rbx, 0
    jge .zinc_rt_pi_unsigned
    mov r8, 1
    neg rbx
.zinc_rt_pi_unsigned:
    cmp rbx, 0
    jne .zinc_rt_pi_loop
    mov byte [rdi], '0'
    dec rdi
    inc rcx
    jmp .zinc_rt_pi_sign
.zinc_rt_pi_loop:
    cmp rbx, 0
    je .zinc_rt_pi_sign
    xor rdx, rdx
    mov rax, rbx
    mov r9, 10
    div r9
    mov rbx, rax
    add rdx, '0'
    mov [rdi], dl
    dec rdi
    inc rcx
    jmp .zinc_rt_pi_loop
.zinc_rt_pi_sign:
    cmp r8, 0
    je .zinc_rt_pi_write
    mov byte [rdi], '-'
    dec rdi
    inc rcx
.zinc_rt_pi_write:
    inc rdi
    mov rsi, rdi
    mov rdx, rcx
    mov rdi, 1
    mov rax, 1
    syscall
    ret

`)

	if !usesScan {
		return
	}

	out.WriteString(`zinc_rt_scan_int:
    ; out: rax = parsed non-negative decimal integer
    mov rax, 0
    mov rdi, 0
    mov rsi, input_buf
    mov rdx, 32
    syscall
    mov r8, rax
    xor rcx, rcx
    xor r9, r9
.zinc_rt_si_loop:
    cmp r9, r8
    jge .zinc_rt_si_done
    movzx rax, byte [input_buf + r9]
    cmp rax, '0'
    jl .zinc_rt_si_skip
    cmp rax, '9'
    jg .zinc_rt_si_skip
    imul rcx, rcx, 10
    sub rax, '0'
    add rcx, rax
.zinc_rt_si_skip:
    inc r9
    jmp .zinc_rt_si_loop
.zinc_rt_si_done:
    mov rax, rcx
    ret

`)
}
